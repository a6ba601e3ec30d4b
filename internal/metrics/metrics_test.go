package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetricsRecordValues verifies counters move as observations arrive.
func TestMetricsRecordValues(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveRun("success", 75)
	m.ObserveRun("parse_failure", 0)
	m.ObserveRun("success", 50)
	m.ObserveEvidence("rejected", 3)
	m.ObserveEvidence("accepted", 0)
	m.ObserveDocuments("unsupported", 2)
	m.ObserveGeneration(1500*time.Millisecond, 42)

	if got := testutil.ToFloat64(m.runs.WithLabelValues("success")); got != 2 {
		t.Fatalf("expected 2 successful runs, got %v", got)
	}
	if got := testutil.ToFloat64(m.evidence.WithLabelValues("rejected")); got != 3 {
		t.Fatalf("expected 3 rejections, got %v", got)
	}
	if got := testutil.ToFloat64(m.tokens); got != 42 {
		t.Fatalf("expected 42 tokens, got %v", got)
	}
	if got := testutil.CollectAndCount(m.riskScore); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
	if got := testutil.CollectAndCount(m.evidence); got != 1 {
		t.Fatalf("expected zero-count observations to be skipped, got %d series", got)
	}
}

// TestNilMetricsIsSafe verifies a nil receiver records nothing.
func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRun("success", 10)
	m.ObserveEvidence("accepted", 1)
	m.ObserveDocuments("attached", 1)
	m.ObserveGeneration(time.Second, 1)
}
