package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStart describes a run as it begins.
type RunStart struct {
	RunID           string
	QuestionSetID   string
	AssessmentLabel string
	RequestedBy     string
	AssessmentID    string
	DocumentCount   int
	Provider        string
	Model           string
	StartedAt       time.Time
}

// RunOutcome describes how a run ended.
type RunOutcome struct {
	Status           string
	FailureKind      string
	ErrorMessage     string
	PromptTokens     *int
	CompletionTokens *int
	TotalTokens      *int
	RiskScore        *int
	RiskLevel        string
	FinishedAt       time.Time
}

// RunRecord is a stored run row.
type RunRecord struct {
	RunID           string
	AssessmentLabel string
	Status          string
	FailureKind     sql.NullString
	ErrorMessage    sql.NullString
	TotalTokens     sql.NullInt64
	RiskScore       sql.NullInt64
	RiskLevel       sql.NullString
}

// UpsertQuestionSet stores a question set once per fingerprint and returns
// its id and key.
func UpsertQuestionSet(ctx context.Context, db *sql.DB, set any, questionCount int) (string, string, error) {
	if db == nil {
		return "", "", errors.New("duckdb: db is nil")
	}
	if set == nil {
		return "", "", errors.New("duckdb: question set is nil")
	}
	canonical, err := CanonicalJSON(set)
	if err != nil {
		return "", "", err
	}
	key := fingerprintBytes(canonical)
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO question_sets (question_set_id, question_set_key, definition, question_count, created_at)
		 VALUES (?, ?, ?, ?, now())
		 ON CONFLICT (question_set_key) DO NOTHING`,
		uuid.NewString(),
		key,
		string(canonical),
		questionCount,
	); err != nil {
		return "", "", fmt.Errorf("upsert question set: %w", err)
	}
	var id string
	if err := db.QueryRowContext(ctx, `SELECT question_set_id FROM question_sets WHERE question_set_key = ?`, key).Scan(&id); err != nil {
		return "", "", fmt.Errorf("lookup question set id: %w", err)
	}
	return id, key, nil
}

// InsertRunStart records a running analysis.
func InsertRunStart(ctx context.Context, db *sql.DB, run RunStart) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if run.RunID == "" {
		return errors.New("duckdb: run id is required")
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO analysis_runs (run_id, question_set_id, assessment_label, requested_by, assessment_id,
		   document_count, provider, model, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'running', ?)`,
		run.RunID,
		nullable(run.QuestionSetID),
		nullable(run.AssessmentLabel),
		nullable(run.RequestedBy),
		nullable(run.AssessmentID),
		run.DocumentCount,
		nullable(run.Provider),
		nullable(run.Model),
		run.StartedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ErrRunNotFound is returned when an outcome names an unknown run.
var ErrRunNotFound = errors.New("duckdb: run not found")

// UpdateRunOutcome records how a run ended.
func UpdateRunOutcome(ctx context.Context, db *sql.DB, runID string, outcome RunOutcome) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	result, err := db.ExecContext(
		ctx,
		`UPDATE analysis_runs
		 SET status = ?, failure_kind = ?, error_message = ?, prompt_tokens = ?, completion_tokens = ?,
		     total_tokens = ?, risk_score = ?, risk_level = ?, finished_at = ?
		 WHERE run_id = ?`,
		outcome.Status,
		nullable(outcome.FailureKind),
		nullable(outcome.ErrorMessage),
		nullableInt(outcome.PromptTokens),
		nullableInt(outcome.CompletionTokens),
		nullableInt(outcome.TotalTokens),
		nullableInt(outcome.RiskScore),
		nullable(outcome.RiskLevel),
		outcome.FinishedAt.UTC(),
		runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrRunNotFound
	}
	return nil
}

// GetRun loads a run row by id.
func GetRun(ctx context.Context, db *sql.DB, runID string) (RunRecord, error) {
	var record RunRecord
	err := db.QueryRowContext(
		ctx,
		`SELECT run_id, COALESCE(assessment_label, ''), status, failure_kind, error_message, total_tokens, risk_score, risk_level
		 FROM analysis_runs WHERE run_id = ?`,
		runID,
	).Scan(
		&record.RunID,
		&record.AssessmentLabel,
		&record.Status,
		&record.FailureKind,
		&record.ErrorMessage,
		&record.TotalTokens,
		&record.RiskScore,
		&record.RiskLevel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, ErrRunNotFound
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run: %w", err)
	}
	return record, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
