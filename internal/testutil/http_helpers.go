package testutil

import (
	"bytes"
	"io"
	"net/http"
	"testing"
)

// DoRequest sends a request and returns the status code and body.
func DoRequest(t testing.TB, method, url, contentType string, payload []byte) (int, []byte) {
	t.Helper()
	ctx := Context(t, DefaultTimeout)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}
