package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Gemini implements Generator for the Gemini API. Attachments are sent as
// inline parts, so PDFs and images are read natively by the model.
type Gemini struct {
	client          *genai.Client
	model           string
	temperature     float64
	maxOutputTokens int
}

// NewGemini constructs a Gemini backend. baseURL and httpClient are optional.
func NewGemini(ctx context.Context, model, apiKey, baseURL string, httpClient *http.Client) (*Gemini, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if strings.TrimSpace(baseURL) != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// WithSampling sets temperature and the output token limit.
func (g *Gemini) WithSampling(temperature float64, maxOutputTokens int) *Gemini {
	g.temperature = temperature
	g.maxOutputTokens = maxOutputTokens
	return g
}

// Generate sends the prompt and attachments in one GenerateContent call.
func (g *Gemini) Generate(ctx context.Context, req Request) (Response, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, attachment := range req.Attachments {
		parts = append(parts, genai.NewPartFromBytes(attachment.Data, attachment.MediaType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(g.temperature)),
	}
	if g.maxOutputTokens > 0 {
		config.MaxOutputTokens = int32(g.maxOutputTokens)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return Response{}, fmt.Errorf("gemini generate: %w", err)
	}
	resp := Response{Text: result.Text(), Model: g.model}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if usage := result.UsageMetadata; usage != nil {
		resp.Usage = Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}
	return resp, nil
}
