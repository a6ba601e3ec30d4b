package cli

import (
	"fmt"
	"io"
	"strings"

	"assessor/internal/report"
)

// isTerminal reports whether a writer is a TTY.
var isTerminal = report.IsTerminal

// resolveNoColor decides whether text output should skip color styling.
func resolveNoColor(mode string, stdout io.Writer) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	switch normalized {
	case "auto":
		return !isTerminal(stdout), nil
	case "always":
		return false, nil
	case "never":
		return true, nil
	default:
		return false, fmt.Errorf("invalid color mode %q (expected auto|always|never)", mode)
	}
}
