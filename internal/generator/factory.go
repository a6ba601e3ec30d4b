package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderReplay     = "replay"
)

// Settings selects and configures a backend.
type Settings struct {
	Provider        string
	Model           string
	BaseURL         string
	APIKey          string
	Temperature     float64
	MaxOutputTokens int
	ReplayFile      string
}

// New builds the backend named by settings.Provider. httpClient may be nil.
func New(ctx context.Context, settings Settings, httpClient *http.Client) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(settings.Provider)) {
	case ProviderGemini:
		gemini, err := NewGemini(ctx, settings.Model, settings.APIKey, settings.BaseURL, httpClient)
		if err != nil {
			return nil, fmt.Errorf("gemini backend: %w", err)
		}
		return gemini.WithSampling(settings.Temperature, settings.MaxOutputTokens), nil
	case ProviderOpenAI:
		var doer HTTPDoer
		if httpClient != nil {
			doer = httpClient
		}
		backend, err := NewOpenAI(settings.Model, settings.APIKey, settings.BaseURL, doer)
		if err != nil {
			return nil, fmt.Errorf("openai backend: %w", err)
		}
		return backend.WithSampling(settings.Temperature, settings.MaxOutputTokens), nil
	case ProviderOpenRouter:
		var doer HTTPDoer
		if httpClient != nil {
			doer = httpClient
		}
		backend, err := NewOpenRouter(settings.Model, settings.APIKey, settings.BaseURL, doer)
		if err != nil {
			return nil, fmt.Errorf("openrouter backend: %w", err)
		}
		backend.Temperature = settings.Temperature
		backend.MaxOutputTokens = settings.MaxOutputTokens
		return backend, nil
	case ProviderReplay:
		if strings.TrimSpace(settings.ReplayFile) == "" {
			return nil, fmt.Errorf("replay backend: replay file is required")
		}
		return Replay{Path: settings.ReplayFile}, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", settings.Provider)
	}
}
