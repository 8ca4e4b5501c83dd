package infrastructure

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Azure OpenAI settings
	AzureAPIKey     string `json:"-"` // Don't expose in JSON
	AzureEndpoint   string `json:"azure_endpoint"`
	AzureDeployment string `json:"azure_deployment"`
	AzureAPIVersion string `json:"azure_api_version"`

	// Outbound HTTP settings
	HTTPTimeoutSeconds  int      `json:"http_timeout_seconds"`
	TranscriptLanguages []string `json:"transcript_languages"`
	FetchConcurrently   bool     `json:"fetch_concurrently"`

	// Session settings
	SessionTTLMinutes    int    `json:"session_ttl_minutes"`
	SessionSweepSchedule string `json:"session_sweep_schedule"` // cron expression

	// API settings
	APIAuthToken string `json:"-"` // Don't expose in JSON
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Host:                 getEnvOrDefault("HOST", "0.0.0.0"),
		AzureAPIKey:          getEnvOrDefault("AZURE_OPENAI_API_KEY", ""),
		AzureEndpoint:        getEnvOrDefault("AZURE_OPENAI_ENDPOINT", ""),
		AzureDeployment:      getEnvOrDefault("AZURE_OPENAI_DEPLOYMENT", "gpt-4o"),
		AzureAPIVersion:      getEnvOrDefault("AZURE_OPENAI_API_VERSION", "2023-09-01-preview"),
		HTTPTimeoutSeconds:   getEnvOrDefaultInt("HTTP_TIMEOUT_SECONDS", 60),
		TranscriptLanguages:  parseStringSlice(getEnvOrDefault("TRANSCRIPT_LANGUAGES", "en")),
		FetchConcurrently:    getEnvOrDefaultBool("FETCH_CONCURRENTLY", false),
		SessionTTLMinutes:    getEnvOrDefaultInt("SESSION_TTL_MINUTES", 120),
		SessionSweepSchedule: getEnvOrDefault("SESSION_SWEEP_SCHEDULE", "@every 10m"),
		APIAuthToken:         getEnvOrDefault("API_AUTH_TOKEN", ""),
	}

	return config, config.validate()
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	if c.AzureAPIKey == "" {
		return &ConfigError{Field: "AZURE_OPENAI_API_KEY", Message: "Azure OpenAI API key is required"}
	}
	if c.AzureEndpoint == "" {
		return &ConfigError{Field: "AZURE_OPENAI_ENDPOINT", Message: "Azure OpenAI endpoint is required"}
	}
	if !strings.HasPrefix(c.AzureEndpoint, "https://") && !strings.HasPrefix(c.AzureEndpoint, "http://") {
		return &ConfigError{Field: "AZURE_OPENAI_ENDPOINT", Message: "must be an http(s) URL"}
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return &ConfigError{Field: "HTTP_TIMEOUT_SECONDS", Message: "must be positive"}
	}
	if c.SessionTTLMinutes <= 0 {
		return &ConfigError{Field: "SESSION_TTL_MINUTES", Message: "must be positive"}
	}
	if _, err := cron.ParseStandard(c.SessionSweepSchedule); err != nil {
		return &ConfigError{Field: "SESSION_SWEEP_SCHEDULE", Message: "invalid schedule: " + err.Error()}
	}
	return nil
}

// HTTPTimeout returns the timeout applied to every outbound request
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// SessionTTL returns how long an idle session is kept
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvOrDefaultBool returns environment variable value as bool or default if not set
func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// parseStringSlice parses comma-separated string into slice
func parseStringSlice(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
