// Package artifact writes a directory of decode results for later review.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tonylturner/ddcdec/internal/ddc"
	"github.com/tonylturner/ddcdec/internal/report"
)

// RunMetadata contains metadata about a decode run.
type RunMetadata struct {
	RunID     string    `json:"run_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration"`

	ConfigPath          string `json:"config_path,omitempty"`
	StrictRepeatedStart bool   `json:"strict_repeated_start"`

	Inputs   []InputRecord `json:"inputs"`
	Stats    RunStats      `json:"stats"`
	ExitCode int           `json:"exit_code"`
	Error    string        `json:"error,omitempty"`

	// Artifact paths (relative to output directory)
	Artifacts ArtifactPaths `json:"artifacts"`
}

// InputRecord describes one decoded input.
type InputRecord struct {
	Input           string `json:"input"`
	AnnotationsJSON string `json:"annotations_json,omitempty"`
	Annotations     int    `json:"annotations"`
	Transactions    int    `json:"transactions"`
	Error           string `json:"error,omitempty"`
}

// RunStats totals the summaries of every input.
type RunStats struct {
	Inputs       int `json:"inputs"`
	Failed       int `json:"failed"`
	Events       int `json:"events"`
	Transactions int `json:"transactions"`
	SCDC         int `json:"scdc"`
	HDCP         int `json:"hdcp"`
	Unknown      int `json:"unknown"`
	Annotations  int `json:"annotations"`
}

// ArtifactPaths contains relative paths to generated artifacts.
type ArtifactPaths struct {
	RunJSON    string `json:"run_json"`
	SummaryTxt string `json:"summary_txt,omitempty"`
}

// OutputManager manages artifact output for a run.
type OutputManager struct {
	outputDir string
	runID     string
	metadata  *RunMetadata
	summaries []report.Summary
}

// NewOutputManager creates a new output manager for the given directory.
func NewOutputManager(outputDir string) (*OutputManager, error) {
	runID := time.Now().Format("20060102-150405")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	return &OutputManager{
		outputDir: outputDir,
		runID:     runID,
		metadata: &RunMetadata{
			RunID:     runID,
			StartTime: time.Now(),
			Artifacts: ArtifactPaths{
				RunJSON: "run.json",
			},
		},
	}, nil
}

// OutputDir returns the output directory path.
func (m *OutputManager) OutputDir() string {
	return m.outputDir
}

// RunID returns the run identifier.
func (m *OutputManager) RunID() string {
	return m.runID
}

// SetConfig records the decoder configuration in metadata.
func (m *OutputManager) SetConfig(configPath string, strict bool) {
	m.metadata.ConfigPath = configPath
	m.metadata.StrictRepeatedStart = strict
}

// annotationsName derives a unique file name for an input's annotations.
func annotationsName(index int, input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return fmt.Sprintf("%02d_%s.annotations.json", index, base)
}

// AddInput records one input. Annotations are written to their own file;
// a failed input only records its error.
func (m *OutputManager) AddInput(input string, annotations []ddc.Annotation, summary *report.Summary, inputErr error) error {
	rec := InputRecord{Input: input}
	m.metadata.Stats.Inputs++
	if inputErr != nil {
		rec.Error = inputErr.Error()
		m.metadata.Stats.Failed++
		m.metadata.Inputs = append(m.metadata.Inputs, rec)
		return nil
	}

	rec.AnnotationsJSON = annotationsName(len(m.metadata.Inputs), input)
	rec.Annotations = len(annotations)
	if annotations == nil {
		annotations = []ddc.Annotation{}
	}
	if err := report.WriteJSONFile(filepath.Join(m.outputDir, rec.AnnotationsJSON), annotations); err != nil {
		return fmt.Errorf("write annotations for %s: %w", input, err)
	}
	m.metadata.Stats.Annotations += len(annotations)

	if summary != nil {
		rec.Transactions = summary.Transactions
		m.metadata.Stats.Events += summary.Events
		m.metadata.Stats.Transactions += summary.Transactions
		m.metadata.Stats.SCDC += summary.SCDC
		m.metadata.Stats.HDCP += summary.HDCP
		m.metadata.Stats.Unknown += summary.Unknown
		m.summaries = append(m.summaries, *summary)
	}
	m.metadata.Inputs = append(m.metadata.Inputs, rec)
	return nil
}

// SummaryPath returns the full path for the summary file.
func (m *OutputManager) SummaryPath() string {
	return filepath.Join(m.outputDir, fmt.Sprintf("summary_%s.txt", m.runID))
}

// RunJSONPath returns the full path for the run.json file.
func (m *OutputManager) RunJSONPath() string {
	return filepath.Join(m.outputDir, "run.json")
}

// Finalize completes the run and writes all artifacts.
func (m *OutputManager) Finalize(exitCode int, runErr error) error {
	m.metadata.EndTime = time.Now()
	m.metadata.Duration = m.metadata.EndTime.Sub(m.metadata.StartTime).String()
	m.metadata.ExitCode = exitCode

	if runErr != nil {
		m.metadata.Error = runErr.Error()
	}

	if err := m.writeSummary(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	m.metadata.Artifacts.SummaryTxt = filepath.Base(m.SummaryPath())

	if err := m.writeRunJSON(); err != nil {
		return fmt.Errorf("write run.json: %w", err)
	}

	return nil
}

// writeSummary writes a human-readable summary file.
func (m *OutputManager) writeSummary() error {
	f, err := os.Create(m.SummaryPath())
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "ddcdec Run Summary\n")
	fmt.Fprintf(f, "==================\n\n")

	fmt.Fprintf(f, "Run ID:     %s\n", m.metadata.RunID)
	fmt.Fprintf(f, "Start Time: %s\n", m.metadata.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f, "End Time:   %s\n", m.metadata.EndTime.Format(time.RFC3339))
	fmt.Fprintf(f, "Duration:   %s\n\n", m.metadata.Duration)

	stats := m.metadata.Stats
	fmt.Fprintf(f, "Inputs: %d (%d failed)\n", stats.Inputs, stats.Failed)
	fmt.Fprintf(f, "Transactions: %d (SCDC %d, HDCP %d, unknown %d)\n\n", stats.Transactions, stats.SCDC, stats.HDCP, stats.Unknown)

	for _, s := range m.summaries {
		report.WriteSummary(f, s)
		fmt.Fprintln(f)
	}
	for _, rec := range m.metadata.Inputs {
		if rec.Error != "" {
			fmt.Fprintf(f, "Failed: %s\n  %s\n\n", rec.Input, strings.ReplaceAll(rec.Error, "\n", "\n  "))
		}
	}

	if m.metadata.Error != "" {
		fmt.Fprintf(f, "Error: %s\n\n", m.metadata.Error)
	}

	fmt.Fprintf(f, "Artifacts\n")
	fmt.Fprintf(f, "---------\n")
	for _, rec := range m.metadata.Inputs {
		if rec.AnnotationsJSON != "" {
			fmt.Fprintf(f, "Annotations: %s\n", rec.AnnotationsJSON)
		}
	}
	fmt.Fprintf(f, "Run JSON: %s\n", m.metadata.Artifacts.RunJSON)

	return nil
}

// writeRunJSON writes the run metadata as JSON.
func (m *OutputManager) writeRunJSON() error {
	data, err := json.MarshalIndent(m.metadata, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.RunJSONPath(), data, 0644)
}
