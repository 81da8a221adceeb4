package main

import (
	"github.com/spf13/cobra"

	"github.com/tonylturner/ddcdec/internal/app"
)

type convertFlags struct {
	input  string
	output string
	dump   bool
}

func newConvertCmd() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert traces between text, YAML and pcap",
		Long: `Convert an I2C event trace between the text, YAML and pcap encodings.
The encodings are chosen from the file extensions. With --dump, print every
record of a capture with a hex dump instead.`,
		Example: `  ddcdec convert --input scdc.txt --output scdc.pcap
  ddcdec convert --input scdc.pcap --dump`,
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
			if flags.output == "" && !flags.dump {
				return missingFlagError(cmd, "--output")
			}
			return app.RunConvert(app.ConvertOptions{
				Input:  flags.input,
				Output: flags.output,
				Dump:   flags.dump,
				Out:    cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "Input trace (required)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output trace")
	cmd.Flags().BoolVar(&flags.dump, "dump", false, "Hex dump the records of a .pcap input")

	return cmd
}
