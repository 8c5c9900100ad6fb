package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// API process
	Port        string
	DatabaseURL string // takes precedence over the discrete DB_* settings
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	// Shared secret for bearer tokens on /internal endpoints. Empty disables the gate.
	InternalAuthSecret string

	// Bot process
	BotPort         string
	APIBaseURL      string
	ChatToken       string
	ChatAppID       string
	ChatGuildID     string
	FallbackRoleID  string
	RequiredRoleIDs []string
	LogWebhookURL   string
	RequestTimeout  time.Duration

	Debug bool
}

func Load() *Config {
	return &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: getenv("DATABASE_URL", ""),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPassword:  getenv("DB_PASSWORD", "postgres"),
		DBName:      getenv("DB_NAME", "linkboard"),
		DBSSLMode:   getenv("DB_SSLMODE", "disable"),

		InternalAuthSecret: getenv("INTERNAL_AUTH_SECRET", ""),

		BotPort:         getenv("BOT_PORT", "8090"),
		APIBaseURL:      getenv("API_BASE_URL", "http://localhost:8080"),
		ChatToken:       getenv("CHAT_TOKEN", ""),
		ChatAppID:       getenv("CHAT_APP_ID", ""),
		ChatGuildID:     getenv("CHAT_GUILD_ID", ""),
		FallbackRoleID:  getenv("DEFAULT_ALLOWED_ROLE_ID", ""),
		RequiredRoleIDs: splitList(getenv("REQUIRED_ROLE_IDS", "")),
		LogWebhookURL:   getenv("LOG_WEBHOOK_URL", ""),
		RequestTimeout:  getenvSeconds("REQUEST_TIMEOUT_SECONDS", 15),

		Debug: getenv("APP_DEBUG", "") == "true",
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvSeconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
