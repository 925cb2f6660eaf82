package v1

import (
	"errors"
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the public API routes (no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.GET("", handler.Hello)
	public.POST("/contact", handler.SubmitContact)
}

// Hello godoc
// @Summary      Liveness greeting
// @Description  Plain greeting with no business meaning.
// @Tags         contact
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *ContactHandler) Hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a contact form submission to email and WhatsApp. Always responds 200; delivery failure is reported in the body.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  domain.ContactResult
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(vErrs))
			return
		}
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// The relay never errors; failure rides in the body with status 200.
	result := h.contactUC.Handle(c.Request.Context(), &req)
	c.JSON(http.StatusOK, result)
}
