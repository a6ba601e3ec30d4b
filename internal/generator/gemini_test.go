package generator

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"assessor/internal/testutil"
)

type geminiBlob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string      `json:"text"`
	InlineData *geminiBlob `json:"inlineData"`
}

type geminiCall struct {
	Contents []struct {
		Role  string       `json:"role"`
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig map[string]json.RawMessage `json:"generationConfig"`
}

// TestGeminiGenerate verifies attachments travel as inline parts and usage
// metadata maps onto Usage.
func TestGeminiGenerate(t *testing.T) {
	var captured geminiCall
	var apiKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		apiKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"answers\":{}}"}]},"finishReason":"STOP"}],`+
			`"usageMetadata":{"promptTokenCount":12,"candidatesTokenCount":4,"totalTokenCount":16},"modelVersion":"gemini-test-001"}`)
	}))
	defer server.Close()

	ctx := testutil.Context(t, 0)
	backend, err := NewGemini(ctx, "gemini-test", "secret", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	resp, err := backend.WithSampling(0, 256).Generate(ctx, Request{
		Prompt:      "analyze",
		Attachments: []Attachment{{Name: "soc2.pdf", MediaType: "application/pdf", Data: []byte("%PDF-1.7")}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text != `{"answers":{}}` || resp.Model != "gemini-test-001" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Usage != (Usage{PromptTokens: 12, CompletionTokens: 4, TotalTokens: 16}) {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if apiKey != "secret" {
		t.Fatalf("unexpected api key header %q", apiKey)
	}

	if len(captured.Contents) != 1 || len(captured.Contents[0].Parts) != 2 {
		t.Fatalf("expected one content with two parts, got %+v", captured.Contents)
	}
	parts := captured.Contents[0].Parts
	if parts[0].Text != "analyze" {
		t.Fatalf("unexpected prompt part %+v", parts[0])
	}
	inline := parts[1].InlineData
	if inline == nil || inline.MIMEType != "application/pdf" || inline.Data != base64.StdEncoding.EncodeToString([]byte("%PDF-1.7")) {
		t.Fatalf("unexpected inline part %+v", parts[1])
	}
	if got := string(captured.GenerationConfig["temperature"]); got != "0" {
		t.Fatalf("expected an explicit zero temperature, got %q", got)
	}
	if got := string(captured.GenerationConfig["responseMimeType"]); got != `"application/json"` {
		t.Fatalf("unexpected response mime type %q", got)
	}
}

// TestNewGeminiRequiresModelAndKey verifies construction errors.
func TestNewGeminiRequiresModelAndKey(t *testing.T) {
	ctx := testutil.Context(t, 0)
	if _, err := NewGemini(ctx, "", "secret", "", nil); err == nil {
		t.Fatalf("expected missing model error")
	}
	if _, err := NewGemini(ctx, "gemini-test", " ", "", nil); err == nil {
		t.Fatalf("expected missing key error")
	}
}
