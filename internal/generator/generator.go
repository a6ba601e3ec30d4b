package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Attachment is a binary document passed to the generator alongside the prompt.
type Attachment struct {
	Name      string
	MediaType string
	Data      []byte
}

// Request is a single composed generation request.
type Request struct {
	Prompt      string
	Attachments []Attachment
}

// Usage reports token consumption for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the raw generator output.
type Response struct {
	Text  string
	Model string
	Usage Usage
}

// Generator turns a prompt and attachments into raw text.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Failure describes why a generation call produced no usable text.
type Failure struct {
	Reason  string
	Timeout bool
	Err     error
}

// Error implements error.
func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	return "generation failed: " + f.Reason
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// ErrEmptyResponse indicates the generator returned no text.
var ErrEmptyResponse = errors.New("generator returned an empty response")

type callResult struct {
	resp Response
	err  error
}

// Invoke performs exactly one generation call bounded by timeout. A zero
// timeout leaves the deadline to ctx. Every error is returned as a *Failure.
func Invoke(ctx context.Context, gen Generator, req Request, timeout time.Duration) (Response, error) {
	if gen == nil {
		return Response{}, &Failure{Reason: "no text generator is configured"}
	}
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan callResult, 1)
	go func() {
		resp, err := gen.Generate(callCtx, req)
		done <- callResult{resp: resp, err: err}
	}()

	var result callResult
	select {
	case result = <-done:
	case <-callCtx.Done():
		result = callResult{err: callCtx.Err()}
	}

	if result.err != nil {
		return Response{}, classify(callCtx, result.err, timeout)
	}
	if strings.TrimSpace(result.resp.Text) == "" {
		return Response{}, &Failure{Reason: ErrEmptyResponse.Error(), Err: ErrEmptyResponse}
	}
	return result.resp, nil
}

func classify(ctx context.Context, err error, timeout time.Duration) *Failure {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		reason := "the text generator timed out"
		if timeout > 0 {
			reason = fmt.Sprintf("the text generator did not respond within %s", timeout)
		}
		return &Failure{Reason: reason, Timeout: true, Err: err}
	case errors.Is(err, context.Canceled):
		return &Failure{Reason: "the analysis run was cancelled", Err: err}
	default:
		return &Failure{Reason: err.Error(), Err: err}
	}
}
