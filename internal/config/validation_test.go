package config

import (
	"errors"
	"testing"
)

// validConfig returns a configuration that passes validation when
// OPENAI_API_KEY is set.
func validConfig() *Config {
	return &Config{
		Provider:        ProviderOpenAI,
		ModelName:       "gpt-4o-mini",
		Temperature:     0.0,
		MaxTurns:        3,
		EmbedderModel:   DefaultEmbedderModel,
		EmbeddingDim:    DefaultEmbeddingDim,
		SearchTopK:      3,
		PostgresHost:    "localhost",
		PostgresPort:    5432,
		PostgresUser:    "furrow",
		PostgresDBName:  "farm_db",
		PostgresSSLMode: "disable",
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() on valid config: %v", err)
	}
}

func TestValidate_Nil(t *testing.T) {
	var cfg *Config
	if err := cfg.Validate(); !errors.Is(err, ErrConfigNil) {
		t.Errorf("Validate() on nil = %v, want ErrConfigNil", err)
	}
}

func TestValidate_Provider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg := validConfig()
	cfg.Provider = "anthropic"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidProvider) {
		t.Errorf("Validate() = %v, want ErrInvalidProvider", err)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if err := validConfig().Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate() = %v, want ErrMissingAPIKey", err)
	}
}

func TestValidate_GoogleAIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg := validConfig()
	cfg.Provider = ProviderGoogleAI
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate() = %v, want ErrMissingAPIKey", err)
	}

	t.Setenv("GEMINI_API_KEY", "test-key")
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with GEMINI_API_KEY set: %v", err)
	}
}

func TestValidate_Ranges(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty model name", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"temperature too low", func(c *Config) { c.Temperature = -0.1 }, ErrInvalidTemperature},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, ErrInvalidTemperature},
		{"zero embedding dim", func(c *Config) { c.EmbeddingDim = 0 }, ErrInvalidEmbeddingDim},
		{"zero top-k", func(c *Config) { c.SearchTopK = 0 }, ErrInvalidSearchTopK},
		{"oversized top-k", func(c *Config) { c.SearchTopK = 51 }, ErrInvalidSearchTopK},
		{"empty host", func(c *Config) { c.PostgresHost = "" }, ErrInvalidPostgresHost},
		{"port out of range", func(c *Config) { c.PostgresPort = 70000 }, ErrInvalidPostgresPort},
		{"empty db name", func(c *Config) { c.PostgresDBName = "" }, ErrInvalidPostgresDBName},
		{"bad sslmode", func(c *Config) { c.PostgresSSLMode = "sometimes" }, ErrInvalidPostgresSSLMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFullModelName(t *testing.T) {
	tests := []struct {
		provider string
		model    string
		want     string
	}{
		{ProviderOpenAI, "gpt-4o-mini", "openai/gpt-4o-mini"},
		{ProviderGoogleAI, "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{ProviderOpenAI, "openai/gpt-4o", "openai/gpt-4o"},
	}

	for _, tt := range tests {
		cfg := &Config{Provider: tt.provider, ModelName: tt.model}
		if got := cfg.FullModelName(); got != tt.want {
			t.Errorf("FullModelName(%s, %s) = %q, want %q", tt.provider, tt.model, got, tt.want)
		}
	}
}
