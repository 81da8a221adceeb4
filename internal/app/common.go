package app

import (
	"fmt"
	"io"
	"os"

	"github.com/tonylturner/ddcdec/internal/catalog"
	"github.com/tonylturner/ddcdec/internal/config"
	"github.com/tonylturner/ddcdec/internal/ddc"
	"github.com/tonylturner/ddcdec/internal/errors"
	"github.com/tonylturner/ddcdec/internal/logging"
)

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.CreateDefaultConfig(), nil
	}
	return config.LoadConfig(path, false)
}

func newLogger(cfg *config.Config, level, file string) (*logging.Logger, error) {
	if level == "" {
		level = cfg.Logging.Level
	}
	if file == "" {
		file = cfg.Logging.File
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.NewLoggerFromEnv(lvl, file)
}

// buildCatalog merges configured and command-line catalog files onto the
// built-in tables. Files are applied in order; later files win.
func buildCatalog(paths ...[]string) (*catalog.Catalog, error) {
	c := catalog.Default()
	for _, group := range paths {
		for _, p := range group {
			next, err := catalog.LoadFiles(c, p)
			if err != nil {
				return nil, errors.WrapCatalogError(err, p)
			}
			c = next
		}
	}
	return c, nil
}

func decoderOptions(cfg *config.Config, observer func(ddc.Transaction)) []ddc.Option {
	opts := []ddc.Option{
		ddc.WithDebug(cfg.DebugAnnotations()),
		ddc.WithStrictRepeatedStart(cfg.Decoder.StrictRepeatedStart),
	}
	if observer != nil {
		opts = append(opts, ddc.WithObserver(observer))
	}
	return opts
}

func outputWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func requireInput(path string) error {
	if path == "" {
		return fmt.Errorf("an input trace is required")
	}
	return nil
}
