package config

import (
	"fmt"
	"os"
)

// Config carries all environment-driven settings. A .env file, when present,
// is loaded by the root command before Load runs.
type Config struct {
	Port     string
	BasePath string
	LogLevel string

	GeminiAPIKey string
	GeminiModel  string

	DataDir     string
	DatabaseURL string

	MicrosoftClientID     string
	MicrosoftClientSecret string
	MicrosoftTenantID     string
	SenderEmail           string
	SenderName            string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment. Only the Gemini API key is
// hard-required; mail credentials are validated when the mail client is built.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "3000"),
		BasePath: os.Getenv("BASE_PATH"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		DataDir:     getEnv("DATA_DIR", "data"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		MicrosoftClientID:     os.Getenv("MICROSOFT_CLIENT_ID"),
		MicrosoftClientSecret: os.Getenv("MICROSOFT_CLIENT_SECRET"),
		MicrosoftTenantID:     os.Getenv("MICROSOFT_TENANT_ID"),
		SenderEmail:           os.Getenv("SENDER_EMAIL"),
		SenderName:            getEnv("SENDER_NAME", "AWL Scanner"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	return cfg, nil
}
