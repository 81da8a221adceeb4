package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/tonylturner/ddcdec/internal/artifact"
	"github.com/tonylturner/ddcdec/internal/catalog"
	"github.com/tonylturner/ddcdec/internal/config"
	"github.com/tonylturner/ddcdec/internal/ddc"
	"github.com/tonylturner/ddcdec/internal/i2c"
	"github.com/tonylturner/ddcdec/internal/logging"
	"github.com/tonylturner/ddcdec/internal/progress"
	"github.com/tonylturner/ddcdec/internal/report"
)

type DecodeOptions struct {
	Inputs       []string
	ConfigPath   string
	Format       string
	Rows         string
	Strict       bool
	NoDebug      bool
	NoColor      bool
	Summary      bool
	CatalogFiles []string
	LogLevel     string
	LogFile      string
	Progress     bool
	ArtifactsDir string
	Out          io.Writer
	ErrOut       io.Writer
}

// DecodeResult holds the annotations of one input.
type DecodeResult struct {
	Input        string
	Annotations  []ddc.Annotation
	Summary      *report.Summary
	Transactions []ddc.Transaction
	Err          error
}

func RunDecode(opts DecodeOptions) error {
	if len(opts.Inputs) == 0 {
		return fmt.Errorf("at least one --input is required")
	}
	cfg, err := decodeConfig(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, opts.LogLevel, opts.LogFile)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.SetOutput(opts.ErrOut)

	inputs, err := ExpandInputs(opts.Inputs)
	if err != nil {
		return err
	}
	logger.LogStartup(inputs, cfg.Output.Format, opts.ConfigPath)

	cat, err := buildCatalog(cfg.Catalog.ExtraFiles, opts.CatalogFiles)
	if err != nil {
		return err
	}

	var bar *progress.ProgressBar
	if opts.Progress && len(inputs) > 1 {
		bar = progress.NewProgressBar(len(inputs), "Decoding")
		if opts.ErrOut != nil {
			bar.SetOutput(opts.ErrOut)
		}
	}
	results := DecodeInputs(inputs, cat, cfg, cfg.Output.Summary || opts.ArtifactsDir != "", logger, bar)
	if bar != nil {
		bar.Finish()
	}

	if err := writeResults(outputWriter(opts.Out), results, cfg); err != nil {
		return err
	}
	runErr := firstError(results)
	if opts.ArtifactsDir != "" {
		if err := writeArtifacts(opts.ArtifactsDir, opts.ConfigPath, cfg, results, runErr); err != nil {
			return err
		}
		logger.Info("Artifacts written to %s", opts.ArtifactsDir)
	}
	return runErr
}

// writeArtifacts stores every result, unfiltered, under dir.
func writeArtifacts(dir, configPath string, cfg *config.Config, results []DecodeResult, runErr error) error {
	om, err := artifact.NewOutputManager(dir)
	if err != nil {
		return err
	}
	om.SetConfig(configPath, cfg.Decoder.StrictRepeatedStart)
	for _, res := range results {
		if err := om.AddInput(res.Input, res.Annotations, res.Summary, res.Err); err != nil {
			return err
		}
	}
	exitCode := 0
	if runErr != nil {
		exitCode = 1
	}
	return om.Finalize(exitCode, runErr)
}

func decodeConfig(opts DecodeOptions) (*config.Config, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Output.Format = firstNonEmpty(opts.Format, cfg.Output.Format)
	cfg.Output.Rows = firstNonEmpty(opts.Rows, cfg.Output.Rows)
	if opts.Strict {
		cfg.Decoder.StrictRepeatedStart = true
	}
	if opts.Summary {
		cfg.Output.Summary = true
	}
	if opts.NoDebug {
		off := false
		cfg.Decoder.DebugAnnotations = &off
	}
	if opts.NoColor {
		off := false
		cfg.Output.Color = &off
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeInputs decodes every input concurrently. Results keep input order.
func DecodeInputs(inputs []string, cat *catalog.Catalog, cfg *config.Config, summary bool, logger *logging.Logger, bar *progress.ProgressBar) []DecodeResult {
	results := make([]DecodeResult, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			events, err := LoadTrace(input)
			if err != nil {
				logger.Error("%s: %v", input, err)
				results[i] = DecodeResult{Input: input, Err: err}
			} else {
				results[i] = DecodeEvents(input, events, cat, cfg, summary, logger)
			}
			if bar != nil {
				bar.Increment(input)
			}
		}(i, input)
	}
	wg.Wait()
	return results
}

// DecodeEvents runs one event stream through a fresh decoder.
func DecodeEvents(input string, events []i2c.Event, cat *catalog.Catalog, cfg *config.Config, summary bool, logger *logging.Logger) DecodeResult {
	res := DecodeResult{Input: input}
	fields := 0
	sink := ddc.SinkFunc(func(a ddc.Annotation) {
		if a.Category == ddc.CategoryFields {
			fields++
		}
		res.Annotations = append(res.Annotations, a)
	})
	observer := func(tx ddc.Transaction) {
		logger.LogTransaction(tx.Protocol.String(), tx.Direction.String(), tx.Offset, tx.HasOffset, tx.Data, fields)
		fields = 0
		res.Transactions = append(res.Transactions, tx)
	}

	dec := ddc.NewDecoder(cat, sink, decoderOptions(cfg, observer)...)
	dec.FeedAll(events)
	dec.Flush()

	stats := dec.Stats()
	logger.Info("%s: %d events, %d transactions, %d annotations", input, stats.Events, stats.Transactions, len(res.Annotations))
	if summary {
		s := report.BuildSummary(input, stats, res.Transactions, cat)
		res.Summary = &s
	}
	return res
}

// writeResults renders the inputs that decoded; failures are reported by
// the returned error instead.
func writeResults(w io.Writer, results []DecodeResult, cfg *config.Config) error {
	inputs := make([]report.Input, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		inputs = append(inputs, report.Input{Input: res.Input, Annotations: res.Annotations, Summary: res.Summary})
	}
	return report.Render(w, inputs, report.Options{
		Format:  cfg.Output.Format,
		Rows:    cfg.Output.Rows,
		Color:   cfg.ColorEnabled(),
		Summary: cfg.Output.Summary,
	})
}

func firstError(results []DecodeResult) error {
	failed := 0
	var first error
	for _, res := range results {
		if res.Err != nil {
			failed++
			if first == nil {
				first = res.Err
			}
		}
	}
	if failed > 1 {
		return fmt.Errorf("%d of %d inputs failed; first: %w", failed, len(results), first)
	}
	return first
}
