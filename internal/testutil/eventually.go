package testutil

import (
	"testing"
	"time"
)

// Eventually polls fn every interval until it reports true, failing the
// test with msg once timeout elapses.
func Eventually(t testing.TB, timeout, interval time.Duration, fn func() bool, msg string) {
	t.Helper()
	if msg == "" {
		msg = "condition not met before timeout"
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !fn() {
		select {
		case <-timer.C:
			t.Fatalf("%s (after %s)", msg, timeout)
		case <-ticker.C:
		}
	}
}
