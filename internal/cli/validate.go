package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"assessor/internal/question"
	"assessor/internal/taxonomy"
)

func newValidateCommand() *cobra.Command {
	var configPath, questionsPath string
	cmd := &cobra.Command{
		Use:   "validate [--config <path>] [--questions <file>]",
		Short: "Validate assessor.yml, the taxonomy file, and a question set",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfg, resolved, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("validation failed:\n%w", err)
			}
			if resolved == "" {
				fmt.Fprintln(out, "No assessor.yml found; defaults OK")
			} else {
				fmt.Fprintf(out, "Config OK: %s\n", resolved)
			}
			tax, err := taxonomy.Build(cfg.TaxonomyFile)
			if err != nil {
				return fmt.Errorf("validation failed:\n%w", err)
			}
			fmt.Fprintf(out, "Taxonomy OK: %d concepts\n", len(tax.Concepts()))
			if questionsPath != "" {
				set, err := question.LoadSet(questionsPath)
				if err != nil {
					return fmt.Errorf("validation failed:\n%w", err)
				}
				fmt.Fprintf(out, "Questions OK: %d questions\n", len(set.Questions))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to assessor.yml (default: search upward from the working directory)")
	cmd.Flags().StringVarP(&questionsPath, "questions", "q", "", "Question set file to validate")
	return cmd
}
