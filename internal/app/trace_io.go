package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tonylturner/ddcdec/internal/errors"
	"github.com/tonylturner/ddcdec/internal/i2c"
	"github.com/tonylturner/ddcdec/internal/pcap"
)

// Trace file encodings, chosen by extension.
const (
	traceText = "text"
	traceYAML = "yaml"
	tracePcap = "pcap"
)

func traceFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".trace", ".log":
		return traceText, nil
	case ".yaml", ".yml":
		return traceYAML, nil
	case ".pcap":
		return tracePcap, nil
	default:
		return "", fmt.Errorf("unsupported trace extension %q (want .txt, .yaml, .yml or .pcap)", filepath.Ext(path))
	}
}

// LoadTrace reads and validates the events in path.
func LoadTrace(path string) ([]i2c.Event, error) {
	events, err := readTrace(path)
	if err != nil {
		return nil, errors.WrapTraceError(err, path)
	}
	if err := i2c.Validate(events); err != nil {
		return nil, errors.WrapTraceError(err, path)
	}
	return events, nil
}

func readTrace(path string) ([]i2c.Event, error) {
	format, err := traceFormat(path)
	if err != nil {
		return nil, err
	}
	if format == tracePcap {
		return pcap.ReadCaptureFile(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer file.Close()
	if format == traceYAML {
		return i2c.ReadYAMLTrace(file)
	}
	return i2c.ReadTrace(file)
}

// SaveTrace writes events to path in the encoding its extension selects.
func SaveTrace(path string, events []i2c.Event) error {
	format, err := traceFormat(path)
	if err != nil {
		return err
	}
	if format == tracePcap {
		return pcap.WriteCaptureFile(path, events)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace: %w", err)
	}
	if format == traceYAML {
		err = i2c.WriteYAMLTrace(file, events)
	} else {
		err = i2c.WriteTrace(file, events)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("write trace: %w", err)
	}
	return file.Close()
}

// ExpandInputs replaces directories with the sorted trace files under them.
func ExpandInputs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			out = append(out, p)
			continue
		}
		found, err := collectTraceFiles(p)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no trace files under %s", p)
		}
		out = append(out, found...)
	}
	return out, nil
}

func collectTraceFiles(root string) ([]string, error) {
	var traces []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ferr := traceFormat(path); ferr == nil {
			traces = append(traces, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk traces: %w", err)
	}
	sort.Strings(traces)
	return traces, nil
}
