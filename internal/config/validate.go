package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a normalized config. Every problem is reported at once
// as a *ValidationError.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if err := structValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		collector.addFieldErrors(fieldErrs)
	}

	if path := cfg.Generator.ReplayFile; path != "" {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			collector.add("generator.replay_file", fmt.Sprintf("file %q does not exist", path))
		}
	}

	params := cfg.Relevance
	if params.BaseConfidence > params.MaxSingleConfidence {
		collector.add("relevance.base_confidence", "must not exceed max_single_confidence")
	}
	if params.GeneralConfidence > params.Cap {
		collector.add("relevance.general_confidence", "must not exceed cap")
	}
	for i, phrase := range params.SentinelPhrases {
		if strings.TrimSpace(phrase) == "" {
			collector.add(fmt.Sprintf("relevance.sentinel_phrases[%d]", i), "must not be empty")
		}
	}

	return collector.result()
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "file":
		return fmt.Sprintf("file %q does not exist", fe.Value())
	case "hostname_port":
		return "must be host:port"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
