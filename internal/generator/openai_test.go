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

// TestOpenAIGenerate verifies chat completion calls against a fake endpoint.
func TestOpenAIGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]json.RawMessage
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := payload["temperature"]; !ok {
			t.Errorf("expected an explicit temperature, got %s", body)
		}
		if !strings.Contains(string(payload["response_format"]), "json_object") {
			t.Errorf("expected json response format, got %s", payload["response_format"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"1","object":"chat.completion","model":"gpt-test","choices":[{"index":0,"message":{"role":"assistant","content":"{}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4}}`)
	}))
	defer server.Close()

	backend, err := NewOpenAI("gpt-test", "secret", server.URL+"/v1", server.Client())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	resp, err := backend.Generate(testutil.Context(t, 0), Request{Prompt: "analyze"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text != "{}" || resp.Usage.TotalTokens != 4 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

// TestOpenAIRejectsPDF verifies non-image attachments are refused before any call.
func TestOpenAIRejectsPDF(t *testing.T) {
	backend, err := NewOpenAI("gpt-test", "secret", "http://127.0.0.1:1/v1", nil)
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	_, err = backend.Generate(testutil.Context(t, 0), Request{
		Prompt:      "analyze",
		Attachments: []Attachment{{Name: "soc2.pdf", MediaType: "application/pdf"}},
	})
	if err == nil || !strings.Contains(err.Error(), "cannot attach") {
		t.Fatalf("expected attachment error, got %v", err)
	}
}
