package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// requireIssue asserts err is a ValidationError naming field.
func requireIssue(t *testing.T, err error, field string) {
	t.Helper()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
	for _, issue := range validationErr.Issues {
		if issue.Field == field {
			return
		}
	}
	t.Fatalf("expected issue for %s, got %q", field, err.Error())
}

func validConfig() Config {
	cfg := Default()
	Normalize(&cfg, ".")
	return cfg
}

func fieldsOf(err error) string {
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		return ""
	}
	fields := make([]string, 0, len(validationErr.Issues))
	for _, issue := range validationErr.Issues {
		fields = append(fields, issue.Field)
	}
	return strings.Join(fields, ",")
}
