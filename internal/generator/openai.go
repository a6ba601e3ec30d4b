package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI implements Generator for OpenAI-compatible chat completion APIs.
// Only image attachments can be sent; other attachment types are rejected.
type OpenAI struct {
	client          *openai.Client
	model           string
	temperature     float32
	maxOutputTokens int
}

// NewOpenAI constructs an OpenAI-compatible backend. An empty baseURL uses
// the public OpenAI endpoint.
func NewOpenAI(model, apiKey, baseURL string, client HTTPDoer) (*OpenAI, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if client != nil {
		cfg.HTTPClient = client
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// WithSampling sets temperature and the output token limit.
func (o *OpenAI) WithSampling(temperature float64, maxOutputTokens int) *OpenAI {
	o.temperature = float32(temperature)
	o.maxOutputTokens = maxOutputTokens
	return o
}

// Generate sends the prompt and image attachments in one chat completion call.
func (o *OpenAI) Generate(ctx context.Context, req Request) (Response, error) {
	parts := []openai.ChatMessagePart{{Type: openai.ChatMessagePartTypeText, Text: req.Prompt}}
	for _, attachment := range req.Attachments {
		if !strings.HasPrefix(attachment.MediaType, "image/") {
			return Response{}, fmt.Errorf("openai backend cannot attach %s (%s)", attachment.Name, attachment.MediaType)
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:" + attachment.MediaType + ";base64," + base64.StdEncoding.EncodeToString(attachment.Data),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}
	completion, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: wireTemperature(o.temperature),
		MaxTokens:   o.maxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Response{}, fmt.Errorf("openai completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return Response{}, fmt.Errorf("openai completion: no choices returned")
	}
	return Response{
		Text:  completion.Choices[0].Message.Content,
		Model: completion.Model,
		Usage: Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
	}, nil
}

// wireTemperature maps 0 to the smallest non-zero value, which go-openai
// does not drop from the request.
func wireTemperature(value float32) float32 {
	if value == 0 {
		return math.SmallestNonzeroFloat32
	}
	return value
}
