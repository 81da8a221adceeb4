package main

import (
	"github.com/spf13/cobra"

	"github.com/tonylturner/ddcdec/internal/app"
)

type catalogFlags struct {
	protocol     string
	configPath   string
	catalogFiles []string
	export       string
}

func newCatalogCmd() *cobra.Command {
	flags := &catalogFlags{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List or export the register catalog",
		Long: `List the SCDC/HDCP registers and bit fields the decoder knows about,
including any extra catalog files, or export one protocol's table as a
YAML catalog to use as a starting point for vendor registers.`,
		Example: `  ddcdec catalog --protocol scdc
  ddcdec catalog --protocol scdc --export scdc.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return app.RunCatalog(app.CatalogOptions{
				Protocol:     flags.protocol,
				ConfigPath:   flags.configPath,
				CatalogFiles: flags.catalogFiles,
				Export:       flags.export,
				Out:          cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.protocol, "protocol", "all", "Protocol: scdc, hdcp or all")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	cmd.Flags().StringSliceVar(&flags.catalogFiles, "catalog", nil, "Extra register catalog YAML (repeatable)")
	cmd.Flags().StringVar(&flags.export, "export", "", "Write the protocol's table to this YAML file")

	return cmd
}
