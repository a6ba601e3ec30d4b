package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// QuestionsFileName is the sample question set written by Scaffold.
const QuestionsFileName = "questions.yml"

const defaultConfig = `version: 1
generator:
  provider: openrouter
  model: "google/gemini-2.5-flash"
  api_key_env: OPENROUTER_API_KEY
  timeout_seconds: 120
  temperature: 0.0

analysis:
  extraction_workers: 4
  max_document_chars: 200000
  require_literal_quotes: true

telemetry:
  sink: duckdb
  duckdb_path: assessor-runs.duckdb

logging:
  level: info
  format: console
`

const defaultQuestions = `version: 1
questions:
  - id: encryption_at_rest
    question: "Is customer data encrypted at rest?"
    weight: 2
  - id: mfa
    question: "Is multi-factor authentication enforced for administrative access?"
    weight: 2
  - id: pentest_cadence
    question: "How often does the vendor perform penetration testing?"
    type: choice
    options: ["Never", "Ad hoc", "Annually", "Quarterly"]
  - id: incident_response
    question: "Does the vendor maintain a documented incident response plan?"
  - id: subprocessors
    question: "Which subprocessors host customer data?"
    type: freetext
`

// Scaffold writes a starter config and question set into dir. Existing
// files are never overwritten.
func Scaffold(dir string) error {
	if dir == "" {
		return fmt.Errorf("target directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	files := []struct {
		name    string
		content string
	}{
		{FileName, defaultConfig},
		{QuestionsFileName, defaultQuestions},
	}
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				return fmt.Errorf("path %q is a directory", path)
			}
			return fmt.Errorf("file already exists at %q", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", file.name, err)
		}
	}
	for _, file := range files {
		if err := os.WriteFile(filepath.Join(dir, file.name), []byte(file.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file.name, err)
		}
	}
	return nil
}
