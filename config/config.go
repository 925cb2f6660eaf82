package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// SMTP transport for the primary contact channel
	EmailHost           string
	EmailPort           string
	EmailUser           string
	EmailPass           string
	EmailToContact      string
	EmailTimeoutSeconds int
	// WhatsApp advisory channel
	WhatsAppNumber    string
	WhatsAppStorePath string
	// CORS allow-list for browser callers
	CORSOrigins []string
	// Fixed-window throttle applied ahead of the relay
	ThrottleTTLSeconds int
	ThrottleLimit      int
	// Optional Redis backend for throttle counters
	RedisURL      string
	RedisPassword string
}

func LoadConfig() (*Config, error) {
	// .env only exists in local development; ignored when missing.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "3100"),
		EmailHost:           getEnv("EMAIL_HOST", ""),
		EmailPort:           getEnv("EMAIL_PORT", "587"),
		EmailUser:           getEnv("EMAIL_USER", ""),
		EmailPass:           getEnv("EMAIL_PASS", ""),
		EmailToContact:      getEnv("EMAIL_TO_CONTACT", ""),
		EmailTimeoutSeconds: getEnvInt("EMAIL_TIMEOUT_SECONDS", 10),
		WhatsAppNumber:      getEnv("WHATSAPP_NUMBER", ""),
		WhatsAppStorePath:   getEnv("WHATSAPP_STORE_PATH", "whatsapp.db"),
		CORSOrigins:         splitOrigins(getEnv("CORS_ORIGIN", "http://localhost:3000")),
		ThrottleTTLSeconds:  getEnvInt("THROTTLE_TTL", 60),
		ThrottleLimit:       getEnvInt("THROTTLE_LIMIT", 30),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
	}

	if cfg.EmailHost == "" || cfg.EmailUser == "" {
		log.Println("WARNING: EMAIL_HOST/EMAIL_USER not configured. Contact emails will fail until set.")
	}
	if cfg.WhatsAppNumber == "" {
		log.Println("WARNING: WHATSAPP_NUMBER not configured. WhatsApp notifications are disabled.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Throttling will use in-memory counters.")
	}

	return cfg, nil
}

// splitOrigins parses the comma-separated CORS_ORIGIN value, trimming
// whitespace and trailing slashes and dropping empty entries.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, strings.TrimRight(o, "/"))
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
