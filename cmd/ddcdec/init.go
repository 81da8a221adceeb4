package main

import (
	"github.com/spf13/cobra"

	"github.com/tonylturner/ddcdec/internal/app"
)

type initFlags struct {
	output      string
	interactive bool
	force       bool
}

func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a ddcdec config file with every default filled in. The format
follows the extension: .yaml/.yml or .toml. With --interactive, a short form
asks for each setting first.`,
		Example: `  ddcdec init
  ddcdec init --output ddcdec.toml --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return app.RunInit(app.InitOptions{
				Output:      flags.output,
				Interactive: flags.interactive,
				Force:       flags.force,
				Out:         cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.output, "output", "ddcdec.yaml", "Config file to write")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Fill in the config with a form")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing file")

	return cmd
}
