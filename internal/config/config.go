package config

import (
	"os"
	"strings"
	"time"

	"assessor/internal/generator"
	"assessor/internal/relevance"
)

// Config is the assessor configuration file.
type Config struct {
	Version      int              `yaml:"version"`
	Generator    GeneratorConfig  `yaml:"generator"`
	Analysis     AnalysisConfig   `yaml:"analysis"`
	Relevance    relevance.Params `yaml:"relevance"`
	TaxonomyFile string           `yaml:"taxonomy_file" validate:"omitempty,file"`
	Telemetry    TelemetryConfig  `yaml:"telemetry"`
	Logging      LoggingConfig    `yaml:"logging"`
	Server       ServerConfig     `yaml:"server"`
}

// GeneratorConfig selects the text generation backend.
type GeneratorConfig struct {
	Provider        string  `yaml:"provider" validate:"required,oneof=openrouter openai gemini replay"`
	Model           string  `yaml:"model" validate:"required_unless=Provider replay"`
	BaseURL         string  `yaml:"base_url" validate:"omitempty,url"`
	APIKeyEnv       string  `yaml:"api_key_env"`
	TimeoutSeconds  int     `yaml:"timeout_seconds" validate:"gte=1,lte=3600"`
	Temperature     float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens int     `yaml:"max_output_tokens" validate:"gte=0"`
	ReplayFile      string  `yaml:"replay_file" validate:"required_if=Provider replay"`
}

// AnalysisConfig tunes document preparation and quote checks.
type AnalysisConfig struct {
	ExtractionWorkers    int  `yaml:"extraction_workers" validate:"gte=1,lte=64"`
	MaxDocumentChars     int  `yaml:"max_document_chars" validate:"gte=1000"`
	RequireLiteralQuotes bool `yaml:"require_literal_quotes"`
}

// TelemetryConfig selects where run records go.
type TelemetryConfig struct {
	Sink       string `yaml:"sink" validate:"oneof=none memory log duckdb"`
	DuckDBPath string `yaml:"duckdb_path" validate:"required_if=Sink duckdb"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string `yaml:"addr" validate:"required,hostname_port"`
	MaxRequestBytes int64  `yaml:"max_request_bytes" validate:"gte=1024"`
}

// Default returns the configuration used when no file is given. Parsed
// files are decoded on top of it, so omitted keys keep these values.
func Default() Config {
	return Config{
		Version: 1,
		Generator: GeneratorConfig{
			Provider:       generator.ProviderOpenRouter,
			TimeoutSeconds: 120,
		},
		Analysis: AnalysisConfig{
			ExtractionWorkers:    4,
			MaxDocumentChars:     200_000,
			RequireLiteralQuotes: true,
		},
		Relevance: relevance.DefaultParams(),
		Telemetry: TelemetryConfig{Sink: "log"},
		Logging:   LoggingConfig{Level: "info", Format: "json"},
		Server:    ServerConfig{Addr: ":8080", MaxRequestBytes: 64 << 20},
	}
}

// Timeout returns the generation timeout.
func (c GeneratorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Settings resolves the backend settings, reading the API key from the
// environment variable named by APIKeyEnv.
func (c GeneratorConfig) Settings(getenv func(string) string) generator.Settings {
	if getenv == nil {
		getenv = os.Getenv
	}
	apiKey := ""
	if name := strings.TrimSpace(c.APIKeyEnv); name != "" {
		apiKey = strings.TrimSpace(getenv(name))
	}
	return generator.Settings{
		Provider:        c.Provider,
		Model:           c.Model,
		BaseURL:         c.BaseURL,
		APIKey:          apiKey,
		Temperature:     c.Temperature,
		MaxOutputTokens: c.MaxOutputTokens,
		ReplayFile:      c.ReplayFile,
	}
}
