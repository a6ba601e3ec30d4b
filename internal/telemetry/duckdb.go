package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"assessor/internal/duckdb"
)

// DuckDB persists runs in the analysis_runs table.
type DuckDB struct {
	db *sql.DB
}

// NewDuckDB wraps an open database that already has the schema applied.
func NewDuckDB(db *sql.DB) *DuckDB {
	return &DuckDB{db: db}
}

// OpenDuckDB opens the database at path and applies the schema.
func OpenDuckDB(ctx context.Context, path string) (*DuckDB, error) {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &DuckDB{db: db}, nil
}

// Close closes the database.
func (d *DuckDB) Close() error {
	return d.db.Close()
}

// RecordRunStart stores the question set fingerprint and a running row.
func (d *DuckDB) RecordRunStart(ctx context.Context, meta RunMeta) (string, error) {
	id := NewRunID()
	questionSetID, _, err := duckdb.UpsertQuestionSet(ctx, d.db, map[string]any{"question_ids": meta.QuestionIDs}, len(meta.QuestionIDs))
	if err != nil {
		return id, fmt.Errorf("record run start: %w", err)
	}
	if err := duckdb.InsertRunStart(ctx, d.db, duckdb.RunStart{
		RunID:           id,
		QuestionSetID:   questionSetID,
		AssessmentLabel: meta.AssessmentLabel,
		RequestedBy:     meta.RequestedBy,
		AssessmentID:    meta.AssessmentID,
		DocumentCount:   meta.DocumentCount,
		Provider:        meta.Provider,
		Model:           meta.Model,
		StartedAt:       meta.StartedAt,
	}); err != nil {
		return id, fmt.Errorf("record run start: %w", err)
	}
	return id, nil
}

// RecordRunOutcome updates the run row.
func (d *DuckDB) RecordRunOutcome(ctx context.Context, runID string, outcome Outcome) error {
	score := outcome.RiskScore
	row := duckdb.RunOutcome{
		Status:       string(outcome.Status),
		FailureKind:  outcome.FailureKind,
		ErrorMessage: outcome.ErrorMessage,
		RiskScore:    &score,
		RiskLevel:    outcome.RiskLevel,
		FinishedAt:   outcome.FinishedAt,
	}
	if usage := outcome.Usage; usage != nil {
		row.PromptTokens = &usage.PromptTokens
		row.CompletionTokens = &usage.CompletionTokens
		row.TotalTokens = &usage.TotalTokens
	}
	if err := duckdb.UpdateRunOutcome(ctx, d.db, runID, row); err != nil {
		return fmt.Errorf("record run outcome: %w", err)
	}
	return nil
}
