package telemetry

import (
	"context"
	"time"
)

// Status is the final state of a run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// RunMeta describes a run as it starts.
type RunMeta struct {
	AssessmentLabel string
	RequestedBy     string
	AssessmentID    string
	QuestionIDs     []string
	DocumentCount   int
	Provider        string
	Model           string
	StartedAt       time.Time
}

// TokenUsage reports generator token consumption.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Outcome describes how a run ended.
type Outcome struct {
	Status       Status
	FailureKind  string
	ErrorMessage string
	Usage        *TokenUsage
	RiskScore    int
	RiskLevel    string
	FinishedAt   time.Time
}

// Sink records run lifecycle events. Implementations are best-effort from
// the caller's point of view: errors are reported but never change a result.
type Sink interface {
	RecordRunStart(ctx context.Context, meta RunMeta) (string, error)
	RecordRunOutcome(ctx context.Context, runID string, outcome Outcome) error
}

// Nop discards all events. Run ids are still issued.
type Nop struct{}

// RecordRunStart returns a fresh run id.
func (Nop) RecordRunStart(context.Context, RunMeta) (string, error) {
	return NewRunID(), nil
}

// RecordRunOutcome does nothing.
func (Nop) RecordRunOutcome(context.Context, string, Outcome) error {
	return nil
}
