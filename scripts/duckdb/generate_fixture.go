package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"assessor/internal/duckdb"
	"assessor/internal/risk"
)

// fixtureConfig defines the JSON config for generating a telemetry fixture.
type fixtureConfig struct {
	Name      string `json:"name"`
	Runs      int    `json:"runs"`
	Questions int    `json:"questions"`
	// FailEvery marks every n-th run as a generation failure. Zero disables it.
	FailEvery int `json:"failEvery"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outPath := flag.String("out", "", "output duckdb file path")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <duckdb file>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	if err := removeIfExists(*outPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := generateFixture(ctx, *outPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Runs < 0 || cfg.Questions < 1 {
		return fixtureConfig{}, fmt.Errorf("runs must be >= 0 and questions >= 1")
	}
	return cfg, nil
}

func generateFixture(ctx context.Context, path string, cfg fixtureConfig) error {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	questions := make([]map[string]any, 0, cfg.Questions)
	for i := 0; i < cfg.Questions; i++ {
		questions = append(questions, map[string]any{
			"id":       fmt.Sprintf("q%02d", i+1),
			"question": fmt.Sprintf("Fixture control %d is in place?", i+1),
			"weight":   1 + i%3,
		})
	}
	setID, _, err := duckdb.UpsertQuestionSet(ctx, db, map[string]any{"name": cfg.Name, "questions": questions}, cfg.Questions)
	if err != nil {
		return err
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < cfg.Runs; i++ {
		if err := insertRun(ctx, db, setID, cfg, i, start.Add(time.Duration(i)*time.Hour)); err != nil {
			return err
		}
	}
	return nil
}

func insertRun(ctx context.Context, db *sql.DB, setID string, cfg fixtureConfig, index int, startedAt time.Time) error {
	runID := deterministicID("run", index)
	if err := duckdb.InsertRunStart(ctx, db, duckdb.RunStart{
		RunID:           runID,
		QuestionSetID:   setID,
		AssessmentLabel: fmt.Sprintf("%s vendor %d", cfg.Name, index%7),
		DocumentCount:   1 + index%4,
		Provider:        "replay",
		Model:           "replay",
		StartedAt:       startedAt,
	}); err != nil {
		return err
	}
	outcome := duckdb.RunOutcome{FinishedAt: startedAt.Add(time.Duration(5+index%40) * time.Second)}
	if cfg.FailEvery > 0 && (index+1)%cfg.FailEvery == 0 {
		outcome.Status = "failure"
		outcome.FailureKind = "generation_failure"
		outcome.ErrorMessage = "fixture timeout"
	} else {
		outcome.Status = "success"
	}
	score := (index * 37) % 101
	if outcome.Status == "failure" {
		score = 0
	}
	prompt, completion := 1200+index*13, 300+index%97
	total := prompt + completion
	outcome.RiskScore = &score
	outcome.RiskLevel = string(risk.LevelFor(score))
	outcome.PromptTokens = &prompt
	outcome.CompletionTokens = &completion
	outcome.TotalTokens = &total
	return duckdb.UpdateRunOutcome(ctx, db, runID, outcome)
}

// removeIfExists deletes an existing fixture file so we always start fresh.
func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing fixture: %w", err)
	}
	return nil
}

// deterministicID generates a repeatable UUID for fixture rows.
func deterministicID(prefix string, index int) string {
	return uuid.NewSHA1(fixtureNamespace, []byte(fmt.Sprintf("%s-%d", prefix, index))).String()
}

var fixtureNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
