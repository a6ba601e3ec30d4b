package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"assessor/internal/engine"
	"assessor/internal/question"
)

// Format selects how a result is rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected json|text)", value)
	}
}

// Options controls text rendering.
type Options struct {
	NoColor bool
}

// Write renders result to w. Questions fix the display order of the text
// format; JSON output is the result itself.
func Write(w io.Writer, format Format, questions []question.Question, result engine.Result, opts Options) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, RenderText(questions, result, opts.NoColor))
		return err
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	}
}
