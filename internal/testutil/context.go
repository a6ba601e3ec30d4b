package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a single test operation when no timeout is given.
const DefaultTimeout = 5 * time.Second

// deadlineMargin is left between a context deadline and the test deadline
// so failures report from the test rather than from the runner.
const deadlineMargin = time.Second

// Context returns a context cancelled when the test ends or after timeout,
// whichever is first. A non-positive timeout selects DefaultTimeout.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if dt, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := dt.Deadline(); ok {
			if remaining := time.Until(deadline) - deadlineMargin; remaining > 0 {
				timeout = min(timeout, remaining)
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
