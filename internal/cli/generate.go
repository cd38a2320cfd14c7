package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"struct-metadata/internal/gen"
)

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "generate [packages...]",
		Aliases: []string{"gen"},
		Short:   "Write the registration file of every annotated package",
		Long: `Inspect the given packages (or the configured ones), validate their
//describe: and //meta: directives and write the generated file into each
package holding annotated types.

Examples:
  describe-gen generate
  describe-gen generate ./models/...
  describe-gen gen -c tools/describe-gen.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := opts.generate(cmd, args)
			if err != nil {
				return err
			}

			if err := gen.WriteFiles(files); err != nil {
				return err
			}

			success := color.New(color.FgGreen, color.Bold)
			for _, file := range files {
				success.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", file.Path())
			}

			return nil
		},
	}
}
