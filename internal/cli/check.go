package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"struct-metadata/internal/gen"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages...]",
		Short: "Verify that generated files are up to date",
		Long: `Run the same inspection as generate without writing anything and fail
when a generated file is missing or differs from what generate would write.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := opts.generate(cmd, args)
			if err != nil {
				return err
			}

			stale, err := gen.Stale(files)
			if err != nil {
				return err
			}

			if len(stale) > 0 {
				warning := color.New(color.FgYellow)
				for _, path := range stale {
					warning.Fprintf(cmd.OutOrStdout(), "stale: %s\n", path)
				}

				return fmt.Errorf("%d generated file(s) out of date, run describe-gen generate", len(stale))
			}

			color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(),
				"✓ %d generated file(s) up to date\n", len(files))

			return nil
		},
	}
}
