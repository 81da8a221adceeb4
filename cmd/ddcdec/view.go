package main

import (
	"github.com/spf13/cobra"

	"github.com/tonylturner/ddcdec/internal/app"
)

type viewFlags struct {
	input        string
	configPath   string
	catalogFiles []string
	strict       bool
}

func newViewCmd() *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse decoded annotations in the terminal",
		Long: `Decode a trace and open an interactive viewer. Use the arrow keys to
move, tab to cycle between all/ddc/debug rows, c to copy the selected
annotation to the clipboard and q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.input == "" && len(args) > 0 {
				flags.input = args[0]
			}
			if flags.input == "" {
				return missingFlagError(cmd, "--input")
			}
			return app.RunView(app.ViewOptions{
				Input:        flags.input,
				ConfigPath:   flags.configPath,
				CatalogFiles: flags.catalogFiles,
				Strict:       flags.strict,
			})
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "Input trace (required)")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	cmd.Flags().StringSliceVar(&flags.catalogFiles, "catalog", nil, "Extra register catalog YAML (repeatable)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Re-check the device address after a repeated START")

	return cmd
}
