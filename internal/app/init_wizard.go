package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tonylturner/ddcdec/internal/config"
)

type InitOptions struct {
	Output      string
	Interactive bool
	Force       bool
	Out         io.Writer
}

func RunInit(opts InitOptions) error {
	path := firstNonEmpty(opts.Output, "ddcdec.yaml")
	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	out := outputWriter(opts.Out)

	if !opts.Interactive {
		if opts.Force {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", path, err)
			}
		}
		// A missing file is created with the defaults and read back.
		if _, err := config.LoadConfig(path, true); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote config to %s\n", path)
		return nil
	}

	cfg := config.CreateDefaultConfig()
	answers := newInitAnswers(cfg)
	if err := buildInitForm(answers).Run(); err != nil {
		return fmt.Errorf("init wizard: %w", err)
	}
	if err := answers.apply(cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.WriteConfig(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote config to %s\n", path)
	return nil
}

// initAnswers holds the values bound to the wizard fields.
type initAnswers struct {
	format   string
	rows     string
	strict   bool
	debug    bool
	color    bool
	logLevel string
	catalogs string
}

func newInitAnswers(cfg *config.Config) *initAnswers {
	return &initAnswers{
		format:   cfg.Output.Format,
		rows:     cfg.Output.Rows,
		strict:   cfg.Decoder.StrictRepeatedStart,
		debug:    cfg.DebugAnnotations(),
		color:    cfg.ColorEnabled(),
		logLevel: cfg.Logging.Level,
		catalogs: strings.Join(cfg.Catalog.ExtraFiles, ", "),
	}
}

func buildInitForm(a *initAnswers) *huh.Form {
	decoderGroup := huh.NewGroup(
		huh.NewConfirm().
			Title("Strict repeated START").
			Description("Re-check the device address after a repeated START.").
			Value(&a.strict),
		huh.NewConfirm().
			Title("Debug annotations").
			Description("Emit one state-trace annotation per bus event.").
			Value(&a.debug),
		huh.NewInput().
			Title("Extra register catalogs (optional)").
			Description("Comma-separated YAML catalog files merged onto the built-in tables.").
			Value(&a.catalogs),
	)

	outputGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Output format").
			Options(
				huh.NewOption("Text", config.FormatText),
				huh.NewOption("JSON", config.FormatJSON),
				huh.NewOption("CSV", config.FormatCSV),
			).
			Value(&a.format),
		huh.NewSelect[string]().
			Title("Rows").
			Options(
				huh.NewOption("All annotations", config.RowsAll),
				huh.NewOption("DDC row only", config.RowsDDC),
				huh.NewOption("Debug row only", config.RowsDebug),
			).
			Value(&a.rows),
		huh.NewConfirm().
			Title("Color text output").
			Value(&a.color),
		huh.NewSelect[string]().
			Title("Log level").
			Options(huh.NewOptions("silent", "error", "info", "verbose", "debug")...).
			Value(&a.logLevel),
	)

	return huh.NewForm(decoderGroup, outputGroup)
}

func (a *initAnswers) apply(cfg *config.Config) error {
	cfg.Decoder.StrictRepeatedStart = a.strict
	debug := a.debug
	cfg.Decoder.DebugAnnotations = &debug
	color := a.color
	cfg.Output.Color = &color
	cfg.Output.Format = a.format
	cfg.Output.Rows = a.rows
	cfg.Logging.Level = a.logLevel

	cfg.Catalog.ExtraFiles = nil
	for _, p := range strings.Split(a.catalogs, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Catalog.ExtraFiles = append(cfg.Catalog.ExtraFiles, p)
		}
	}
	return config.Validate(cfg)
}
