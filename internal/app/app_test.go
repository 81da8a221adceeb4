package app

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tonylturner/ddcdec/internal/catalog"
	"github.com/tonylturner/ddcdec/internal/config"
	"github.com/tonylturner/ddcdec/internal/i2c"
)

// scdcWriteTrace enables scrambling with a 1/40 bit clock ratio.
const scdcWriteTrace = `# SCDC write of TMDS Config
0-1 START
2-10 ADDRESS WRITE 0xA8
11-12 ACK
13-21 DATA WRITE 0x20
22-23 ACK
24-32 DATA WRITE 0x03
33-34 ACK
35-36 STOP
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTraceFormats(t *testing.T) {
	dir := t.TempDir()
	textPath := writeFile(t, dir, "write.txt", scdcWriteTrace)

	events, err := LoadTrace(textPath)
	if err != nil {
		t.Fatalf("LoadTrace(text): %v", err)
	}
	if len(events) != 8 {
		t.Fatalf("got %d events, want 8", len(events))
	}

	for _, name := range []string{"write.yaml", "write.pcap"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveTrace(path, events); err != nil {
				t.Fatalf("SaveTrace: %v", err)
			}
			got, err := LoadTrace(path)
			if err != nil {
				t.Fatalf("LoadTrace: %v", err)
			}
			if len(got) != len(events) || got[5] != events[5] {
				t.Errorf("round trip = %v", got)
			}
		})
	}
}

func TestLoadTraceErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.txt", "0-1 START\n2-3 JUMP\n")
	if _, err := LoadTrace(bad); err == nil || !strings.Contains(err.Error(), "Malformed trace line") {
		t.Errorf("err = %v, want malformed line", err)
	}

	backwards := writeFile(t, dir, "backwards.txt", "10-11 START\n2-3 STOP\n")
	if _, err := LoadTrace(backwards); err == nil || !strings.Contains(err.Error(), "out of order") {
		t.Errorf("err = %v, want out of order", err)
	}

	if _, err := LoadTrace(filepath.Join(dir, "trace.bin")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := LoadTrace(filepath.Join(dir, "missing.txt")); err == nil || !strings.Contains(err.Error(), "File does not exist") {
		t.Errorf("err = %v, want missing file", err)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", scdcWriteTrace)
	writeFile(t, dir, "a.yaml", "events: []\n")
	writeFile(t, dir, "notes.md", "ignored")

	got, err := ExpandInputs([]string{dir, "other.pcap"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.txt"), "other.pcap"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ExpandInputs = %v, want %v", got, want)
	}

	empty := t.TempDir()
	if _, err := ExpandInputs([]string{empty}); err == nil {
		t.Error("expected error for a directory with no traces")
	}
}

func TestRunDecodeText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "write.txt", scdcWriteTrace)
	var out bytes.Buffer
	err := RunDecode(DecodeOptions{
		Inputs:   []string{path},
		Rows:     config.RowsDDC,
		NoColor:  true,
		Summary:  true,
		LogLevel: "silent",
		Out:      &out,
	})
	if err != nil {
		t.Fatalf("RunDecode: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"SCDC write — Address: 0xA8",
		"TMDS Config",
		"Scrambling Enable: ENABLED",
		"TMDS_Bit_Clock_Ratio = 1/40",
		"Transactions: 1 (SCDC 1, HDCP 0)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Debug") {
		t.Errorf("ddc rows should not include debug annotations:\n%s", text)
	}
}

func TestRunDecodeJSONMultipleInputs(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", scdcWriteTrace)
	events, err := LoadTrace(first)
	if err != nil {
		t.Fatal(err)
	}
	second := filepath.Join(dir, "second.pcap")
	if err := SaveTrace(second, events); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err = RunDecode(DecodeOptions{
		Inputs:   []string{second, first},
		Format:   config.FormatJSON,
		LogLevel: "silent",
		Out:      &out,
	})
	if err != nil {
		t.Fatalf("RunDecode: %v", err)
	}
	var results []struct {
		Input       string `json:"input"`
		Annotations []struct {
			Category string `json:"category"`
			Text     string `json:"text"`
		} `json:"annotations"`
	}
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(results) != 2 || results[0].Input != second || results[1].Input != first {
		t.Fatalf("results out of argument order: %+v", results)
	}
	if len(results[0].Annotations) != len(results[1].Annotations) {
		t.Errorf("pcap and text inputs decoded differently")
	}
}

func TestRunDecodeCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "write.txt", scdcWriteTrace)
	var out bytes.Buffer
	err := RunDecode(DecodeOptions{
		Inputs:   []string{path},
		Format:   config.FormatCSV,
		Rows:     config.RowsDebug,
		LogLevel: "silent",
		Out:      &out,
	})
	if err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 9 {
		t.Fatalf("got %d records, want header + 8 debug rows", len(records))
	}
	if records[1][4] != "IDLE START" {
		t.Errorf("first debug row = %v", records[1])
	}
}

func TestRunDecodeReportsFailedInput(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", scdcWriteTrace)
	bad := writeFile(t, dir, "bad.txt", "0-1 NOPE\n")
	var out bytes.Buffer
	err := RunDecode(DecodeOptions{Inputs: []string{bad, good}, NoColor: true, LogLevel: "silent", Out: &out})
	if err == nil {
		t.Fatal("expected error for bad input")
	}
	if !strings.Contains(out.String(), "== "+good+" ==") {
		t.Errorf("good input should still be printed:\n%s", out.String())
	}
}

func TestRunDecodeWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", scdcWriteTrace)
	bad := writeFile(t, dir, "bad.txt", "0-1 NOPE\n")
	outDir := filepath.Join(dir, "bundle")
	var out bytes.Buffer
	err := RunDecode(DecodeOptions{
		Inputs:       []string{good, bad},
		Format:       config.FormatJSON,
		LogLevel:     "silent",
		ArtifactsDir: outDir,
		Out:          &out,
	})
	if err == nil {
		t.Fatal("expected error for bad input")
	}
	if strings.Contains(out.String(), `"summary"`) {
		t.Errorf("summary should stay out of stdout without --summary:\n%s", out.String())
	}

	data, err := os.ReadFile(filepath.Join(outDir, "run.json"))
	if err != nil {
		t.Fatalf("run.json not written: %v", err)
	}
	var meta struct {
		ExitCode int `json:"exit_code"`
		Stats    struct {
			Inputs int `json:"inputs"`
			Failed int `json:"failed"`
			SCDC   int `json:"scdc"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatal(err)
	}
	if meta.ExitCode != 1 || meta.Stats.Inputs != 2 || meta.Stats.Failed != 1 || meta.Stats.SCDC != 1 {
		t.Errorf("run.json = %s", data)
	}
	if _, err := os.Stat(filepath.Join(outDir, "00_good.annotations.json")); err != nil {
		t.Errorf("annotations file missing: %v", err)
	}
}

func TestRunDecodeSummaryFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "ddcdec.yaml", `output:
  color: false
  summary: true
logging:
  level: silent
`)
	trace := writeFile(t, dir, "write.txt", scdcWriteTrace)

	var out bytes.Buffer
	if err := RunDecode(DecodeOptions{Inputs: []string{trace}, ConfigPath: cfgPath, Out: &out}); err != nil {
		t.Fatalf("RunDecode: %v", err)
	}
	if !strings.Contains(out.String(), "Summary: "+trace) {
		t.Errorf("output.summary in config did not print a summary:\n%s", out.String())
	}

	out.Reset()
	err := RunDecode(DecodeOptions{Inputs: []string{trace}, ConfigPath: cfgPath, Format: config.FormatJSON, Out: &out})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"summary"`) {
		t.Errorf("JSON output missing summary:\n%s", out.String())
	}
}

func TestRunDecodeLogsToErrOut(t *testing.T) {
	path := writeFile(t, t.TempDir(), "write.txt", scdcWriteTrace)
	var out, errOut bytes.Buffer
	err := RunDecode(DecodeOptions{
		Inputs:   []string{path},
		NoColor:  true,
		LogLevel: "verbose",
		Out:      &out,
		ErrOut:   &errOut,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut.String(), "Starting ddcdec") {
		t.Errorf("log lines should go to ErrOut, got %q", errOut.String())
	}
	if strings.Contains(out.String(), "Starting ddcdec") {
		t.Error("log lines leaked into the annotation output")
	}
}

func TestRunDecodeUsesConfigAndCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vendor.yaml", `version: 1
name: vendor
protocol: scdc
registers:
  - offset: 0x20
    name: Vendor TMDS
    bytes:
      - - mask: 0x01
          values: {0x00: "scramble off", 0x01: "scramble on"}
`)
	cfgPath := writeFile(t, dir, "ddcdec.toml", `
[decoder]
debug_annotations = false

[output]
color = false

[logging]
level = "silent"

[catalog]
extra_files = ["vendor.yaml"]
`)
	trace := writeFile(t, dir, "write.txt", scdcWriteTrace)

	var out bytes.Buffer
	if err := RunDecode(DecodeOptions{Inputs: []string{trace}, ConfigPath: cfgPath, Out: &out}); err != nil {
		t.Fatalf("RunDecode: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Vendor TMDS") || !strings.Contains(text, "scramble on") {
		t.Errorf("vendor catalog not applied:\n%s", text)
	}
	if strings.Contains(text, "IDLE START") {
		t.Errorf("debug annotations should be off:\n%s", text)
	}
}

func TestDecodeEventsCollectsTransactions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "write.txt", scdcWriteTrace)
	events, err := LoadTrace(path)
	if err != nil {
		t.Fatal(err)
	}
	events = append(events, i2c.Start(40, 41), i2c.AddressWrite(42, 50, 0x74), i2c.Ack(51, 52), i2c.Stop(53, 54))

	res := DecodeEvents("write.txt", events, catalog.Default(), config.CreateDefaultConfig(), true, nil)
	if len(res.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(res.Transactions))
	}
	if res.Summary == nil || res.Summary.Events != len(events) {
		t.Errorf("summary = %+v", res.Summary)
	}
}

func TestRunCatalog(t *testing.T) {
	var out bytes.Buffer
	if err := RunCatalog(CatalogOptions{Out: &out}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "SCDC registers") || !strings.Contains(out.String(), "HDCP registers") {
		t.Errorf("listing = %s", out.String())
	}

	path := filepath.Join(t.TempDir(), "scdc.yaml")
	out.Reset()
	if err := RunCatalog(CatalogOptions{Protocol: "scdc", Export: path, Out: &out}); err != nil {
		t.Fatal(err)
	}
	file, err := catalog.LoadAndValidate(path)
	if err != nil {
		t.Fatalf("exported catalog invalid: %v", err)
	}
	if len(file.Registers) == 0 {
		t.Error("exported catalog is empty")
	}

	if err := RunCatalog(CatalogOptions{Export: path, Out: &out}); err == nil {
		t.Error("export without a protocol should fail")
	}
	if err := RunCatalog(CatalogOptions{Protocol: "edid", Out: &out}); err == nil {
		t.Error("unknown protocol should fail")
	}
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "write.txt", scdcWriteTrace)
	output := filepath.Join(dir, "write.pcap")

	var out bytes.Buffer
	if err := RunConvert(ConvertOptions{Input: input, Output: output, Out: &out}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Wrote 8 events") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := RunConvert(ConvertOptions{Input: output, Dump: true, Out: &out}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "DATA WRITE 0x03") {
		t.Errorf("dump = %s", out.String())
	}

	if err := RunConvert(ConvertOptions{Input: input, Dump: true, Out: &out}); err == nil {
		t.Error("--dump on a text trace should fail")
	}
	if err := RunConvert(ConvertOptions{Input: input, Out: &out}); err == nil {
		t.Error("missing --output should fail")
	}
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ddcdec.toml")
	var out bytes.Buffer
	if err := RunInit(InitOptions{Output: path, Out: &out}); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfig(path, false)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Output.Format != config.FormatText {
		t.Errorf("format = %q", cfg.Output.Format)
	}

	if err := RunInit(InitOptions{Output: path, Out: &out}); err == nil {
		t.Error("existing file should not be overwritten without --force")
	}
	if err := os.WriteFile(path, []byte("[output]\nformat = \"csv\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := RunInit(InitOptions{Output: path, Force: true, Out: &out}); err != nil {
		t.Fatalf("--force: %v", err)
	}
	cfg, err = config.LoadConfig(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != config.FormatText {
		t.Errorf("--force kept the old config: format = %q", cfg.Output.Format)
	}
}

func TestInitAnswersApply(t *testing.T) {
	cfg := config.CreateDefaultConfig()
	a := newInitAnswers(cfg)
	if a.format != config.FormatText || !a.debug || !a.color {
		t.Errorf("answers from defaults = %+v", a)
	}

	a.strict = true
	a.debug = false
	a.format = config.FormatCSV
	a.rows = config.RowsDDC
	a.catalogs = " vendor.yaml, ,extra.yaml "
	if err := a.apply(cfg); err != nil {
		t.Fatal(err)
	}
	if !cfg.Decoder.StrictRepeatedStart || cfg.DebugAnnotations() || cfg.Output.Format != config.FormatCSV {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Catalog.ExtraFiles) != 2 || cfg.Catalog.ExtraFiles[1] != "extra.yaml" {
		t.Errorf("extra files = %v", cfg.Catalog.ExtraFiles)
	}

	a.rows = config.RowsDebug
	if err := a.apply(cfg); err == nil {
		t.Error("debug rows with debug annotations off should fail validation")
	}
}
