package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-portfolio-backend/config"
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	result domain.ContactResult
	calls  int
	gotReq *domain.ContactRequest
}

func (s *stubUsecase) Handle(ctx context.Context, req *domain.ContactRequest) domain.ContactResult {
	s.calls++
	s.gotReq = req
	return s.result
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "3100",
		CORSOrigins:        []string{"http://localhost:3000"},
		ThrottleTTLSeconds: 60,
		ThrottleLimit:      30,
	}
}

func newTestRouter(uc domain.ContactUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		Config:    testConfig(),
	})
}

func TestHello(t *testing.T) {
	router := newTestRouter(&stubUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello World!", w.Body.String())
}

func TestSubmitContactSuccess(t *testing.T) {
	stub := &stubUsecase{result: domain.ContactResult{
		Success: true,
		Data:    domain.ContactSuccessReply,
	}}
	router := newTestRouter(stub)

	body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success":true,"data":"Thank you for your message! I'll get back to you soon."}`,
		w.Body.String())
	assert.Equal(t, 1, stub.calls)
	require.NotNil(t, stub.gotReq)
	assert.Equal(t, "Ada", stub.gotReq.Name)
}

func TestSubmitContactRelayFailure(t *testing.T) {
	// Delivery failure is a body-level condition; the status stays 200.
	stub := &stubUsecase{result: domain.ContactResult{
		Success: false,
		Data:    domain.ContactFailureReply,
	}}
	router := newTestRouter(stub)

	body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success":false,"data":"Something went wrong. Please try again later."}`,
		w.Body.String())
}

func TestSubmitContactMissingName(t *testing.T) {
	stub := &stubUsecase{}
	router := newTestRouter(stub)

	body := `{"email":"ada@example.com","subject":"Hi","message":"Hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stub.calls, "the relay must never run for an invalid submission")

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Message string            `json:"message"`
			Fields  map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error.Fields, "Name")
}

func TestSubmitContactInvalidEmail(t *testing.T) {
	stub := &stubUsecase{}
	router := newTestRouter(stub)

	body := `{"name":"Ada","email":"not-an-email","subject":"Hi","message":"Hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestSubmitContactMalformedBody(t *testing.T) {
	stub := &stubUsecase{}
	router := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stub.calls)
}
