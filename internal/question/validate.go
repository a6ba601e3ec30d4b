package question

import (
	"fmt"
	"math"
	"strings"
)

// Issue captures a validation problem in a question set.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question set validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeSet checks the set version and normalizes its questions.
func NormalizeSet(set Set) (Set, error) {
	collector := &issueCollector{}
	if set.Version == 0 {
		collector.add("version", "is required")
	} else if set.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", set.Version))
	}
	questions := normalizeQuestions(set.Questions, collector)
	if err := collector.result(); err != nil {
		return Set{}, err
	}
	set.Questions = questions
	return set, nil
}

// Normalize trims whitespace, applies defaults and validates a question list.
// An omitted type means boolean and an omitted weight means 1.
func Normalize(questions []Question) ([]Question, error) {
	collector := &issueCollector{}
	normalized := normalizeQuestions(questions, collector)
	if err := collector.result(); err != nil {
		return nil, err
	}
	return normalized, nil
}

func normalizeQuestions(questions []Question, collector *issueCollector) []Question {
	if len(questions) == 0 {
		collector.add("questions", "must include at least one entry")
		return nil
	}
	out := make([]Question, 0, len(questions))
	seenIDs := map[string]struct{}{}
	for i, question := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		question.ID = strings.TrimSpace(question.ID)
		if question.ID == "" {
			collector.add(prefix+".id", "is required")
		} else if _, exists := seenIDs[question.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", question.ID))
		} else {
			seenIDs[question.ID] = struct{}{}
		}

		question.Text = strings.TrimSpace(question.Text)
		if question.Text == "" {
			collector.add(prefix+".question", "is required")
		}

		question.Type = Type(strings.ToLower(strings.TrimSpace(string(question.Type))))
		if question.Type == "" {
			question.Type = TypeBoolean
		}

		switch {
		case math.IsNaN(question.Weight) || math.IsInf(question.Weight, 0):
			collector.add(prefix+".weight", "must be a finite number")
		case question.Weight < 0:
			collector.add(prefix+".weight", "must be positive")
		case question.Weight == 0:
			question.Weight = 1
		}

		question.Options = normalizeStringSlice(question.Options)
		switch question.Type {
		case TypeChoice:
			validateOptions(prefix, question.Options, collector)
		case TypeBoolean, TypeFreeText:
			if len(question.Options) > 0 {
				collector.add(prefix+".options", fmt.Sprintf("not allowed for %s questions", question.Type))
			}
		default:
			collector.add(prefix+".type", fmt.Sprintf("unsupported type %q (expected boolean|choice|freetext)", question.Type))
		}
		out = append(out, question)
	}
	return out
}

func validateOptions(prefix string, options []string, collector *issueCollector) {
	if len(options) < 2 {
		collector.add(prefix+".options", "choice questions need at least two options")
		return
	}
	seen := map[string]struct{}{}
	for i, option := range options {
		field := fmt.Sprintf("%s.options[%d]", prefix, i)
		if option == "" {
			collector.add(field, "is required")
			continue
		}
		key := NormalizeAnswerText(option)
		if _, exists := seen[key]; exists {
			collector.add(field, fmt.Sprintf("duplicate option %q", option))
			continue
		}
		seen[key] = struct{}{}
	}
}

func normalizeStringSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
