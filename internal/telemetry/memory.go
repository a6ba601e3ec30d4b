package telemetry

import (
	"context"
	"fmt"
	"sync"
)

// Record is one run as captured by Memory.
type Record struct {
	ID       string
	Meta     RunMeta
	Outcome  Outcome
	Finished bool
}

// Memory keeps run records in process. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	order   []string
	records map[string]*Record
}

// NewMemory constructs an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{records: map[string]*Record{}}
}

// RecordRunStart stores the run metadata.
func (m *Memory) RecordRunStart(_ context.Context, meta RunMeta) (string, error) {
	id := NewRunID()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = &Record{ID: id, Meta: meta}
	m.order = append(m.order, id)
	return id, nil
}

// RecordRunOutcome stores the run outcome.
func (m *Memory) RecordRunOutcome(_ context.Context, runID string, outcome Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[runID]
	if !ok {
		return fmt.Errorf("telemetry: unknown run %q", runID)
	}
	record.Outcome = outcome
	record.Finished = true
	return nil
}

// Records returns copies of all records in start order.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.records[id])
	}
	return out
}
