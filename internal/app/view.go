package app

import (
	"path/filepath"

	"github.com/tonylturner/ddcdec/internal/tui"
)

type ViewOptions struct {
	Input        string
	ConfigPath   string
	CatalogFiles []string
	Strict       bool
}

func RunView(opts ViewOptions) error {
	if err := requireInput(opts.Input); err != nil {
		return err
	}
	cfg, err := decodeConfig(DecodeOptions{ConfigPath: opts.ConfigPath, Strict: opts.Strict})
	if err != nil {
		return err
	}
	cat, err := buildCatalog(cfg.Catalog.ExtraFiles, opts.CatalogFiles)
	if err != nil {
		return err
	}
	events, err := LoadTrace(opts.Input)
	if err != nil {
		return err
	}
	res := DecodeEvents(opts.Input, events, cat, cfg, false, nil)
	return tui.Run(filepath.Base(opts.Input), res.Annotations)
}
