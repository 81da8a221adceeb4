package app

import (
	"fmt"
	"io"

	"github.com/tonylturner/ddcdec/internal/catalog"
	"github.com/tonylturner/ddcdec/internal/report"
)

type CatalogOptions struct {
	Protocol     string
	ConfigPath   string
	CatalogFiles []string
	Export       string
	Out          io.Writer
}

func RunCatalog(opts CatalogOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	cat, err := buildCatalog(cfg.Catalog.ExtraFiles, opts.CatalogFiles)
	if err != nil {
		return err
	}
	out := outputWriter(opts.Out)

	var protocols []catalog.Protocol
	if opts.Protocol == "" || opts.Protocol == "all" {
		protocols = []catalog.Protocol{catalog.ProtocolSCDC, catalog.ProtocolHDCP}
	} else {
		p, err := catalog.ParseProtocol(opts.Protocol)
		if err != nil {
			return err
		}
		protocols = []catalog.Protocol{p}
	}

	if opts.Export != "" {
		if len(protocols) != 1 {
			return fmt.Errorf("--export needs a single --protocol (scdc or hdcp)")
		}
		if err := catalog.Save(opts.Export, catalog.Export(cat, protocols[0])); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %s registers to %s\n", protocols[0], opts.Export)
		return nil
	}

	for i, p := range protocols {
		if i > 0 {
			fmt.Fprintln(out)
		}
		report.WriteCatalog(out, cat, p)
	}
	return nil
}
