package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the given variables for the duration of the test. t.Setenv
// registers the restore; Unsetenv removes the value so fallbacks apply even
// on machines where these are exported.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t,
		"PORT", "EMAIL_HOST", "EMAIL_PORT", "EMAIL_USER", "EMAIL_PASS",
		"EMAIL_TO_CONTACT", "EMAIL_TIMEOUT_SECONDS", "WHATSAPP_NUMBER",
		"WHATSAPP_STORE_PATH", "CORS_ORIGIN", "THROTTLE_TTL", "THROTTLE_LIMIT",
		"REDIS_URL", "REDIS_PASSWORD",
	)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3100", cfg.Port)
	assert.Equal(t, "587", cfg.EmailPort)
	assert.Equal(t, 60, cfg.ThrottleTTLSeconds)
	assert.Equal(t, 30, cfg.ThrottleLimit)
	assert.Equal(t, 10, cfg.EmailTimeoutSeconds)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("THROTTLE_TTL", "120")
	t.Setenv("THROTTLE_LIMIT", "5")
	t.Setenv("EMAIL_PORT", "2525")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 120, cfg.ThrottleTTLSeconds)
	assert.Equal(t, 5, cfg.ThrottleLimit)
	assert.Equal(t, "2525", cfg.EmailPort)
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("THROTTLE_LIMIT", "lots")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.ThrottleLimit)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t,
		[]string{"https://example.com", "https://www.example.com"},
		splitOrigins("https://example.com, https://www.example.com/"))

	assert.Equal(t, []string{"https://example.com"}, splitOrigins("https://example.com,,  "))

	assert.Nil(t, splitOrigins(""))
}
