package telemetry

import (
	"context"

	"go.uber.org/zap"
)

// Log writes run events to a zap logger.
type Log struct {
	Logger *zap.Logger
}

// RecordRunStart logs the run start and returns a new run id.
func (l Log) RecordRunStart(_ context.Context, meta RunMeta) (string, error) {
	id := NewRunID()
	l.logger().Info("analysis run started",
		zap.String("run_id", id),
		zap.String("assessment_label", meta.AssessmentLabel),
		zap.String("requested_by", meta.RequestedBy),
		zap.String("assessment_id", meta.AssessmentID),
		zap.Int("questions", len(meta.QuestionIDs)),
		zap.Int("documents", meta.DocumentCount),
		zap.String("provider", meta.Provider),
		zap.String("model", meta.Model),
	)
	return id, nil
}

// RecordRunOutcome logs the run outcome.
func (l Log) RecordRunOutcome(_ context.Context, runID string, outcome Outcome) error {
	fields := []zap.Field{
		zap.String("run_id", runID),
		zap.String("status", string(outcome.Status)),
		zap.Int("risk_score", outcome.RiskScore),
		zap.String("risk_level", outcome.RiskLevel),
	}
	if outcome.FailureKind != "" {
		fields = append(fields, zap.String("failure_kind", outcome.FailureKind), zap.String("error", outcome.ErrorMessage))
	}
	if outcome.Usage != nil {
		fields = append(fields,
			zap.Int("prompt_tokens", outcome.Usage.PromptTokens),
			zap.Int("completion_tokens", outcome.Usage.CompletionTokens),
			zap.Int("total_tokens", outcome.Usage.TotalTokens),
		)
	}
	if outcome.Status == StatusFailure {
		l.logger().Warn("analysis run failed", fields...)
		return nil
	}
	l.logger().Info("analysis run finished", fields...)
	return nil
}

func (l Log) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
