package infrastructure

import (
	"errors"
	"os"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads so tests start from defaults
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "HOST",
		"AZURE_OPENAI_API_KEY", "AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_DEPLOYMENT", "AZURE_OPENAI_API_VERSION",
		"HTTP_TIMEOUT_SECONDS", "TRANSCRIPT_LANGUAGES", "FETCH_CONCURRENTLY",
		"SESSION_TTL_MINUTES", "SESSION_SWEEP_SCHEDULE", "API_AUTH_TOKEN",
	}
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_OPENAI_API_KEY", "test-key")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AzureAPIKey != "test-key" {
		t.Errorf("Expected AzureAPIKey to be 'test-key', got '%s'", cfg.AzureAPIKey)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
	}
	if cfg.AzureDeployment != "gpt-4o" {
		t.Errorf("Expected AzureDeployment to be 'gpt-4o', got '%s'", cfg.AzureDeployment)
	}
	if cfg.AzureAPIVersion != "2023-09-01-preview" {
		t.Errorf("Expected AzureAPIVersion to be '2023-09-01-preview', got '%s'", cfg.AzureAPIVersion)
	}
	if cfg.HTTPTimeout() != 60*time.Second {
		t.Errorf("Expected HTTPTimeout to be 60s, got %v", cfg.HTTPTimeout())
	}
	if cfg.SessionTTL() != 120*time.Minute {
		t.Errorf("Expected SessionTTL to be 120m, got %v", cfg.SessionTTL())
	}
	if len(cfg.TranscriptLanguages) != 1 || cfg.TranscriptLanguages[0] != "en" {
		t.Errorf("Expected TranscriptLanguages to be [en], got %v", cfg.TranscriptLanguages)
	}
	if cfg.FetchConcurrently {
		t.Error("Expected FetchConcurrently to default to false")
	}
	if cfg.SessionSweepSchedule != "@every 10m" {
		t.Errorf("Expected SessionSweepSchedule to be '@every 10m', got '%s'", cfg.SessionSweepSchedule)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_OPENAI_API_KEY", "test-key")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "15")
	t.Setenv("TRANSCRIPT_LANGUAGES", "de, en")
	t.Setenv("FETCH_CONCURRENTLY", "true")
	t.Setenv("SESSION_SWEEP_SCHEDULE", "*/5 * * * *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be '9090', got '%s'", cfg.Port)
	}
	if cfg.HTTPTimeout() != 15*time.Second {
		t.Errorf("Expected HTTPTimeout to be 15s, got %v", cfg.HTTPTimeout())
	}
	if len(cfg.TranscriptLanguages) != 2 || cfg.TranscriptLanguages[0] != "de" {
		t.Errorf("Expected TranscriptLanguages to be [de en], got %v", cfg.TranscriptLanguages)
	}
	if !cfg.FetchConcurrently {
		t.Error("Expected FetchConcurrently to be true")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantField string
	}{
		{
			name:      "missing api key",
			env:       map[string]string{"AZURE_OPENAI_ENDPOINT": "https://example.openai.azure.com"},
			wantField: "AZURE_OPENAI_API_KEY",
		},
		{
			name:      "missing endpoint",
			env:       map[string]string{"AZURE_OPENAI_API_KEY": "k"},
			wantField: "AZURE_OPENAI_ENDPOINT",
		},
		{
			name:      "endpoint without scheme",
			env:       map[string]string{"AZURE_OPENAI_API_KEY": "k", "AZURE_OPENAI_ENDPOINT": "example.openai.azure.com"},
			wantField: "AZURE_OPENAI_ENDPOINT",
		},
		{
			name: "bad schedule",
			env: map[string]string{
				"AZURE_OPENAI_API_KEY":   "k",
				"AZURE_OPENAI_ENDPOINT":  "https://example.openai.azure.com",
				"SESSION_SWEEP_SCHEDULE": "whenever",
			},
			wantField: "SESSION_SWEEP_SCHEDULE",
		},
		{
			name: "non-positive ttl",
			env: map[string]string{
				"AZURE_OPENAI_API_KEY":  "k",
				"AZURE_OPENAI_ENDPOINT": "https://example.openai.azure.com",
				"SESSION_TTL_MINUTES":   "-1",
			},
			wantField: "SESSION_TTL_MINUTES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Expected field %s, got %s", tt.wantField, cfgErr.Field)
			}
		})
	}
}

func TestParseStringSlice(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{}},
		{"en", []string{"en"}},
		{"en,de,fr", []string{"en", "de", "fr"}},
		{"en, de , fr ", []string{"en", "de", "fr"}},
		{"en,,de", []string{"en", "de"}},
	}

	for _, test := range tests {
		result := parseStringSlice(test.input)
		if len(result) != len(test.expected) {
			t.Errorf("For input '%s', expected length %d, got %d", test.input, len(test.expected), len(result))
			continue
		}
		for i, expected := range test.expected {
			if result[i] != expected {
				t.Errorf("For input '%s', expected[%d] = '%s', got '%s'", test.input, i, expected, result[i])
			}
		}
	}
}
