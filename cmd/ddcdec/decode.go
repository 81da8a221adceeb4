package main

import (
	"github.com/spf13/cobra"

	"github.com/tonylturner/ddcdec/internal/app"
)

type decodeFlags struct {
	inputs       []string
	configPath   string
	format       string
	rows         string
	strict       bool
	noDebug      bool
	noColor      bool
	summary      bool
	catalogFiles []string
	logLevel     string
	logFile      string
	progress     bool
	artifacts    string
}

func newDecodeCmd() *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode [trace...]",
		Short: "Decode I2C event traces into DDC annotations",
		Long: `Decode one or more I2C bus event traces into SCDC/HDCP transactions.

Inputs may be text traces (.txt), YAML traces (.yaml/.yml), captures written
by "ddcdec convert" (.pcap) or directories containing them. Several inputs
are decoded concurrently and printed in argument order.`,
		Example: `  # Decode a sigrok-style text trace
  ddcdec decode --input scdc.txt

  # Only the DDC row, as JSON, with a summary
  ddcdec decode --input scdc.pcap --rows ddc --format json --summary

  # Re-check addresses after repeated START, with a vendor catalog
  ddcdec decode --input traces/ --strict --catalog vendor.yaml

  # Keep a run bundle for later review
  ddcdec decode --input traces/ --artifacts out/run1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			flags.inputs = append(flags.inputs, args...)
			if len(flags.inputs) == 0 {
				return missingFlagError(cmd, "--input")
			}
			return runDecode(cmd, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.inputs, "input", nil, "Input trace file or directory (repeatable)")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: text, json or csv (default from config, else text)")
	cmd.Flags().StringVar(&flags.rows, "rows", "", "Annotation rows: all, ddc or debug")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Re-check the device address after a repeated START")
	cmd.Flags().BoolVar(&flags.noDebug, "no-debug", false, "Suppress the per-event debug row")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored text output")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print a per-input summary")
	cmd.Flags().StringSliceVar(&flags.catalogFiles, "catalog", nil, "Extra register catalog YAML (repeatable)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: silent, error, info, verbose or debug")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Write JSON log lines to this file")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show progress on stderr when decoding several inputs")

	cmd.Flags().StringVar(&flags.artifacts, "artifacts", "", "Also write annotations, summaries and run.json into this directory")

	return cmd
}

func runDecode(cmd *cobra.Command, flags *decodeFlags) error {
	return app.RunDecode(app.DecodeOptions{
		Inputs:       flags.inputs,
		ConfigPath:   flags.configPath,
		Format:       flags.format,
		Rows:         flags.rows,
		Strict:       flags.strict,
		NoDebug:      flags.noDebug,
		NoColor:      flags.noColor,
		Summary:      flags.summary,
		CatalogFiles: flags.catalogFiles,
		LogLevel:     flags.logLevel,
		LogFile:      flags.logFile,
		Progress:     flags.progress,
		ArtifactsDir: flags.artifacts,
		Out:          cmd.OutOrStdout(),
		ErrOut:       cmd.ErrOrStderr(),
	})
}
