package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	// Gmail account used as both SMTP login and sender address.
	GmailUser        string
	GmailAppPassword string
	SMTPHost         string
	SMTPPort         int
	MailSenderName   string

	AllowedOrigins []string // CORS allowed origins
	StaticDir      string   // empty disables static file serving
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:          getEnv("PORT", "3000"),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		GmailUser:        getEnv("GMAIL_USER", ""),
		GmailAppPassword: getEnv("GMAIL_APP_PASSWORD", ""),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		MailSenderName:   getEnv("MAIL_SENDER_NAME", "Raizian Studio"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "*")),
		StaticDir:        getEnv("STATIC_DIR", "public"),
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
