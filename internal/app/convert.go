package app

import (
	"fmt"
	"io"
	"os"

	"github.com/tonylturner/ddcdec/internal/errors"
	"github.com/tonylturner/ddcdec/internal/pcap"
)

type ConvertOptions struct {
	Input  string
	Output string
	Dump   bool
	Out    io.Writer
}

// RunConvert rewrites a trace in the encoding the output extension selects,
// or dumps capture records when Dump is set.
func RunConvert(opts ConvertOptions) error {
	if err := requireInput(opts.Input); err != nil {
		return err
	}
	out := outputWriter(opts.Out)

	if opts.Dump {
		format, err := traceFormat(opts.Input)
		if err != nil {
			return err
		}
		if format != tracePcap {
			return fmt.Errorf("--dump needs a .pcap input")
		}
		file, err := os.Open(opts.Input)
		if err != nil {
			return errors.WrapTraceError(fmt.Errorf("open capture: %w", err), opts.Input)
		}
		defer file.Close()
		if err := pcap.DumpCapture(file, out); err != nil {
			return errors.WrapTraceError(err, opts.Input)
		}
		return nil
	}

	if opts.Output == "" {
		return fmt.Errorf("--output is required unless --dump is set")
	}
	events, err := LoadTrace(opts.Input)
	if err != nil {
		return err
	}
	if err := SaveTrace(opts.Output, events); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d events to %s\n", len(events), opts.Output)
	return nil
}
