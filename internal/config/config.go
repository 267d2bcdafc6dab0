package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	SecretKey      string
	DataFile       string
	UploadDir      string
	MaxUploadBytes int64
	CORSOrigin     string

	AnthropicAPIKey    string
	AnthropicModel     string
	AnthropicMaxTokens int

	GoogleAPIKey      string
	GoogleModel       string
	GoogleTemperature float64
	GoogleMaxTokens   int

	UnsplashAccessKey string

	CleanupSchedule      string
	ExportRetentionHours int
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	// Missing .env is fine, env vars are read from the environment.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil {
		return nil, err
	}
	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "16777216"), 10, 64)
	if err != nil {
		return nil, err
	}
	temperature, err := strconv.ParseFloat(getEnv("GOOGLE_TEMPERATURE", "0.2"), 64)
	if err != nil {
		return nil, err
	}
	retention, err := strconv.Atoi(getEnv("EXPORT_RETENTION_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		SecretKey:      getEnv("SECRET_KEY", "dev-secret"),
		DataFile:       getEnv("DATA_FILE", "./data.json"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: maxUpload,
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),

		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-sonnet-20240229"),
		AnthropicMaxTokens: getEnvInt("ANTHROPIC_MAX_TOKENS", 1024),

		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", getEnv("GOOGLE_KEY", "")),
		GoogleModel:       getEnv("GOOGLE_MODEL", "models/text-bison-001"),
		GoogleTemperature: temperature,
		GoogleMaxTokens:   getEnvInt("GOOGLE_MAX_TOKENS", 1024),

		UnsplashAccessKey: getEnv("UNSPLASH_ACCESS_KEY", ""),

		CleanupSchedule:      getEnv("CLEANUP_SCHEDULE", "@hourly"),
		ExportRetentionHours: retention,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
