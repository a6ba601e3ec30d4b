package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue is one invalid config field, named by its YAML path.
type Issue struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field found in one pass. Source is
// the file the config came from, empty for in-memory configs.
type ValidationError struct {
	Source string
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	var b strings.Builder
	if err.Source != "" {
		fmt.Fprintf(&b, "invalid config %s:\n", err.Source)
	}
	for i, issue := range err.Issues {
		if i > 0 {
			b.WriteByte('\n')
		}
		if err.Source != "" {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s: %s", issue.Field, issue.Message)
	}
	return b.String()
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// addFieldErrors records struct tag failures under their YAML paths.
func (c *issueCollector) addFieldErrors(errs validator.ValidationErrors) {
	for _, fe := range errs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		c.add(field, describeFieldError(fe))
	}
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
