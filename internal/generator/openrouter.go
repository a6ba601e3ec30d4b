package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// defaultOpenRouterBaseURL is the default OpenRouter API base URL.
const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// HTTPDoer abstracts HTTP clients used by backends.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenRouter implements Generator for the OpenRouter chat completions API.
// PDFs are sent as file parts and images as data URLs.
type OpenRouter struct {
	APIKey          string
	BaseURL         string
	Client          HTTPDoer
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// NewOpenRouter constructs an OpenRouter backend with explicit settings.
func NewOpenRouter(model, apiKey, baseURL string, client HTTPDoer) (*OpenRouter, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenRouter{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		Model:   model,
	}, nil
}

type openRouterRequest struct {
	Model          string              `json:"model"`
	Messages       []openRouterMessage `json:"messages"`
	Temperature    *float64            `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *openRouterFormat   `json:"response_format,omitempty"`
}

type openRouterFormat struct {
	Type string `json:"type"`
}

type openRouterMessage struct {
	Role    string           `json:"role"`
	Content []openRouterPart `json:"content"`
}

type openRouterPart struct {
	Type     string              `json:"type"`
	Text     string              `json:"text,omitempty"`
	ImageURL *openRouterImageURL `json:"image_url,omitempty"`
	File     *openRouterFile     `json:"file,omitempty"`
}

type openRouterImageURL struct {
	URL string `json:"url"`
}

type openRouterFile struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

type openRouterResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends the prompt and attachments in one chat completion call.
func (p *OpenRouter) Generate(ctx context.Context, req Request) (Response, error) {
	parts := []openRouterPart{{Type: "text", Text: req.Prompt}}
	for _, attachment := range req.Attachments {
		dataURL := "data:" + attachment.MediaType + ";base64," + base64.StdEncoding.EncodeToString(attachment.Data)
		if strings.HasPrefix(attachment.MediaType, "image/") {
			parts = append(parts, openRouterPart{Type: "image_url", ImageURL: &openRouterImageURL{URL: dataURL}})
			continue
		}
		parts = append(parts, openRouterPart{Type: "file", File: &openRouterFile{Filename: attachment.Name, FileData: dataURL}})
	}
	temperature := p.Temperature
	body := openRouterRequest{
		Model:          p.Model,
		Messages:       []openRouterMessage{{Role: "user", Content: parts}},
		MaxTokens:      p.MaxOutputTokens,
		Temperature:    &temperature,
		ResponseFormat: &openRouterFormat{Type: "json_object"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Response{}, fmt.Errorf("openrouter error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var decoded openRouterResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Error != nil {
		return Response{}, fmt.Errorf("openrouter error: %s", decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return Response{}, fmt.Errorf("openrouter error: no choices returned")
	}
	return Response{
		Text:  decoded.Choices[0].Message.Content,
		Model: decoded.Model,
		Usage: decoded.Usage,
	}, nil
}
