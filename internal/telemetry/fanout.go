package telemetry

import (
	"context"
	"errors"
	"sync"
)

// Fanout forwards events to several sinks. The first sink issues the run id;
// the ids issued by the others are mapped back to it.
type Fanout struct {
	sinks []Sink
	mu    sync.Mutex
	ids   map[string][]string
}

// NewFanout combines sinks. At least one sink is required.
func NewFanout(first Sink, rest ...Sink) *Fanout {
	return &Fanout{sinks: append([]Sink{first}, rest...), ids: map[string][]string{}}
}

// RecordRunStart starts the run on every sink and joins their errors.
func (f *Fanout) RecordRunStart(ctx context.Context, meta RunMeta) (string, error) {
	var errs []error
	ids := make([]string, len(f.sinks))
	for i, sink := range f.sinks {
		id, err := sink.RecordRunStart(ctx, meta)
		if err != nil {
			errs = append(errs, err)
		}
		ids[i] = id
	}
	primary := ids[0]
	if primary == "" {
		primary = NewRunID()
	}
	f.mu.Lock()
	f.ids[primary] = ids
	f.mu.Unlock()
	return primary, errors.Join(errs...)
}

// RecordRunOutcome forwards the outcome to every sink that started the run.
func (f *Fanout) RecordRunOutcome(ctx context.Context, runID string, outcome Outcome) error {
	f.mu.Lock()
	ids, ok := f.ids[runID]
	delete(f.ids, runID)
	f.mu.Unlock()
	if !ok {
		ids = make([]string, len(f.sinks))
		for i := range ids {
			ids[i] = runID
		}
	}
	var errs []error
	for i, sink := range f.sinks {
		if ids[i] == "" {
			continue
		}
		if err := sink.RecordRunOutcome(ctx, ids[i], outcome); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
