package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"assessor/internal/config"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold assessor.yml and a sample question set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usagef("too many arguments")
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := config.Scaffold(dir); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", filepath.Join(dir, config.FileName))
			fmt.Fprintf(out, "Wrote %s\n", filepath.Join(dir, config.QuestionsFileName))
			return nil
		},
	}
}
