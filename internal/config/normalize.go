package config

import (
	"path/filepath"
	"strings"

	"assessor/internal/generator"
)

var defaultModels = map[string]string{
	generator.ProviderOpenRouter: "google/gemini-2.5-flash",
	generator.ProviderOpenAI:     "gpt-4.1-mini",
	generator.ProviderGemini:     "gemini-2.5-flash",
}

var defaultKeyEnvs = map[string]string{
	generator.ProviderOpenRouter: "OPENROUTER_API_KEY",
	generator.ProviderOpenAI:     "OPENAI_API_KEY",
	generator.ProviderGemini:     "GEMINI_API_KEY",
}

// Normalize canonicalizes enum values, fills provider defaults, and
// resolves relative paths against baseDir.
func Normalize(cfg *Config, baseDir string) {
	gen := &cfg.Generator
	gen.Provider = strings.ToLower(strings.TrimSpace(gen.Provider))
	gen.Model = strings.TrimSpace(gen.Model)
	gen.BaseURL = strings.TrimSpace(gen.BaseURL)
	if gen.Model == "" {
		gen.Model = defaultModels[gen.Provider]
	}
	if strings.TrimSpace(gen.APIKeyEnv) == "" {
		gen.APIKeyEnv = defaultKeyEnvs[gen.Provider]
	}
	gen.ReplayFile = resolvePath(baseDir, gen.ReplayFile)

	cfg.TaxonomyFile = resolvePath(baseDir, cfg.TaxonomyFile)
	cfg.Telemetry.Sink = strings.ToLower(strings.TrimSpace(cfg.Telemetry.Sink))
	if cfg.Telemetry.Sink == "" {
		cfg.Telemetry.Sink = "none"
	}
	if cfg.Telemetry.DuckDBPath != ":memory:" {
		cfg.Telemetry.DuckDBPath = resolvePath(baseDir, cfg.Telemetry.DuckDBPath)
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if cfg.Relevance.SentinelPhrases == nil {
		cfg.Relevance.SentinelPhrases = []string{}
	}
}

func resolvePath(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
