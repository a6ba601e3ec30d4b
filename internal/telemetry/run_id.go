package telemetry

import "github.com/google/uuid"

// NewRunID returns a new random run identifier.
func NewRunID() string {
	return uuid.NewString()
}
