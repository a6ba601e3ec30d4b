package generator

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"assessor/internal/testutil"
)

// TestOpenRouterGenerate verifies the request payload and response decoding.
func TestOpenRouterGenerate(t *testing.T) {
	var captured openRouterRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"model":"m-1","choices":[{"message":{"content":"{\"answers\":{}}"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`)
	}))
	defer server.Close()

	backend, err := NewOpenRouter("m", "secret", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	resp, err := backend.Generate(testutil.Context(t, 0), Request{
		Prompt: "analyze",
		Attachments: []Attachment{
			{Name: "soc2.pdf", MediaType: "application/pdf", Data: []byte("%PDF")},
			{Name: "diagram.png", MediaType: "image/png", Data: []byte{0x89, 'P'}},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text != `{"answers":{}}` || resp.Usage.TotalTokens != 15 || resp.Model != "m-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
	parts := captured.Messages[0].Content
	if len(parts) != 3 {
		t.Fatalf("expected 3 content parts, got %d", len(parts))
	}
	if parts[1].Type != "file" || parts[1].File.Filename != "soc2.pdf" || !strings.HasPrefix(parts[1].File.FileData, "data:application/pdf;base64,") {
		t.Fatalf("unexpected file part %+v", parts[1])
	}
	if parts[2].Type != "image_url" || !strings.HasPrefix(parts[2].ImageURL.URL, "data:image/png;base64,") {
		t.Fatalf("unexpected image part %+v", parts[2])
	}
	if captured.Temperature == nil || *captured.Temperature != 0 {
		t.Fatalf("expected an explicit zero temperature, got %v", captured.Temperature)
	}
}

// TestOpenRouterErrorStatus verifies non-2xx responses are errors.
func TestOpenRouterErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()
	backend, err := NewOpenRouter("m", "secret", server.URL, server.Client())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	_, err = backend.Generate(testutil.Context(t, 0), Request{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}
