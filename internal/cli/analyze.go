package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"assessor/internal/document"
	"assessor/internal/engine"
	"assessor/internal/question"
	"assessor/internal/report"
)

type analyzeOptions struct {
	configPath   string
	questions    string
	docs         []string
	auxDocs      []string
	label        string
	requestedBy  string
	assessmentID string
	format       string
	color        string
}

func newAnalyzeCommand() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze --questions <file> --doc <path> [--aux <path>=<note>]...",
		Short: "Answer a question set from documents and score the risk",
		Example: "  assessor analyze --questions questions.yml --doc soc2.pdf --doc policy.md\n" +
			"  assessor analyze -q questions.yml -d policy.md --aux hosting-soc2.pdf=\"hosting provider\" --format text",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to assessor.yml (default: search upward from the working directory)")
	flags.StringVarP(&opts.questions, "questions", "q", "", "Question set file (YAML or JSON)")
	flags.StringArrayVarP(&opts.docs, "doc", "d", nil, "Primary document path (repeatable)")
	flags.StringArrayVar(&opts.auxDocs, "aux", nil, "Auxiliary (fourth-party) document as path[=relationship note] (repeatable)")
	flags.StringVar(&opts.label, "label", "", "Assessment label, usually the vendor name")
	flags.StringVar(&opts.requestedBy, "user", "", "Identity of the requester, recorded in telemetry")
	flags.StringVar(&opts.assessmentID, "assessment", "", "Assessment id, recorded in telemetry")
	flags.StringVarP(&opts.format, "format", "f", "json", "Output format: json|text")
	flags.StringVar(&opts.color, "color", "auto", "Color text output: auto|always|never")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	if strings.TrimSpace(opts.questions) == "" {
		return usagef("--questions is required")
	}
	if len(opts.docs) == 0 && len(opts.auxDocs) == 0 {
		return usagef("at least one --doc or --aux is required")
	}
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return &usageError{err: err}
	}
	noColor, err := resolveNoColor(opts.color, cmd.OutOrStdout())
	if err != nil {
		return &usageError{err: err}
	}

	set, err := question.LoadSet(opts.questions)
	if err != nil {
		return err
	}
	docs, err := loadDocuments(opts.docs, opts.auxDocs)
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := buildApp(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.engine.Analyze(ctx, engine.Request{
		Documents:       docs,
		Questions:       set.Questions,
		AssessmentLabel: opts.label,
		Run: engine.RunContext{
			RequestedBy:  opts.requestedBy,
			AssessmentID: opts.assessmentID,
		},
	})
	if err != nil {
		return err
	}
	if result.Failure != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: analysis incomplete (%s): %s\n", result.Failure.Kind, result.Failure.Reason)
	}
	return report.Write(cmd.OutOrStdout(), format, set.Questions, result, report.Options{NoColor: noColor})
}

// loadDocuments reads primary and auxiliary documents in flag order.
func loadDocuments(primary, auxiliary []string) ([]document.Input, error) {
	docs := make([]document.Input, 0, len(primary)+len(auxiliary))
	for _, path := range primary {
		doc, err := document.LoadFile(path, document.RolePrimary, "")
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	for _, value := range auxiliary {
		path, note := document.ParseAuxiliaryArg(value)
		if path == "" {
			return nil, usagef("invalid --aux value %q", value)
		}
		doc, err := document.LoadFile(path, document.RoleAuxiliary, note)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
