package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		l, err := NewLogger(LogLevelInfo, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer l.Close()
		if l.level != LogLevelInfo {
			t.Errorf("level = %d, want %d", l.level, LogLevelInfo)
		}
		if l.file != nil {
			t.Error("file should be nil when no path given")
		}
	})

	t.Run("with file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.log")
		l, err := NewLogger(LogLevelDebug, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer l.Close()
		if l.file == nil {
			t.Error("file should not be nil")
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := NewLogger(LogLevelInfo, "/nonexistent/dir/test.log")
		if err == nil {
			t.Error("expected error for invalid path")
		}
	})
}

func TestNewLoggerWithOptions_NoColor(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLoggerWithOptions(LogLevelVerbose, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.SetOutput(&buf)
	l.Info("plain")
	if !strings.Contains(buf.String(), "plain") {
		t.Errorf("console = %q, want message", buf.String())
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("console = %q, want no color escapes", buf.String())
	}
}

func readLogLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line %q is not JSON: %v", line, err)
		}
		lines = append(lines, m)
	}
	return lines
}

func messages(lines []map[string]any) []string {
	var out []string
	for _, m := range lines {
		out = append(out, m["verbosity"].(string)+": "+m["message"].(string))
	}
	return out
}

func TestLoggerLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(LogLevelInfo, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.SetOutput(&bytes.Buffer{})

	l.Error("error msg")
	l.Info("info msg")
	l.Verbose("verbose msg")
	l.Debug("debug msg")
	l.Close()

	got := strings.Join(messages(readLogLines(t, path)), "\n")
	if !strings.Contains(got, "error: error msg") {
		t.Error("log should contain error message")
	}
	if !strings.Contains(got, "info: info msg") {
		t.Error("log should contain info message")
	}
	if strings.Contains(got, "verbose msg") {
		t.Error("log should NOT contain verbose message at Info level")
	}
	if strings.Contains(got, "debug msg") {
		t.Error("log should NOT contain debug message at Info level")
	}
}

func TestLoggerSilentLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(LogLevelSilent, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Error("should not appear")
	l.Info("should not appear")
	l.Close()

	data, _ := os.ReadFile(path)
	if len(strings.TrimSpace(string(data))) > 0 {
		t.Error("silent logger should produce no output")
	}
}

func TestLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLoggerWithOptions(LogLevelInfo, "", true)
	if err != nil {
		t.Fatal(err)
	}
	l.SetOutput(&buf)

	l.Info("quiet")
	l.Error("loud")
	if strings.Contains(buf.String(), "quiet") {
		t.Error("info should stay off the console below verbose")
	}
	if !strings.Contains(buf.String(), "loud") {
		t.Error("errors should reach the console")
	}

	buf.Reset()
	l.SetLevel(LogLevelVerbose)
	l.Info("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("info should reach the console at verbose")
	}
}

func TestLogHex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(LogLevelDebug, path)
	if err != nil {
		t.Fatal(err)
	}
	l.SetOutput(&bytes.Buffer{})
	l.LogHex("data", []byte{0x20, 0x01, 0xff})
	l.Close()

	got := strings.Join(messages(readLogLines(t, path)), "\n")
	if !strings.Contains(got, "data: 20 01 ff") {
		t.Errorf("log = %q, want hex bytes", got)
	}
}

func TestLogTransaction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewLogger(LogLevelVerbose, path)
	if err != nil {
		t.Fatal(err)
	}
	l.SetOutput(&bytes.Buffer{})
	l.LogTransaction("SCDC", "write", 0x20, true, []byte{0x01}, 2)
	l.LogTransaction("HDCP", "read", 0, false, []byte{0x00}, 0)
	l.Close()

	got := strings.Join(messages(readLogLines(t, path)), "\n")
	if !strings.Contains(got, "SCDC write offset=0x20 bytes=1 fields=2") {
		t.Errorf("log = %q", got)
	}
	if !strings.Contains(got, "HDCP read offset=- bytes=1 fields=0") {
		t.Errorf("log = %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"":        LogLevelInfo,
		"silent":  LogLevelSilent,
		"ERROR":   LogLevelError,
		"verbose": LogLevelVerbose,
		" debug ": LogLevelDebug,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewLoggerFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogNoColor, "true")
	l, err := NewLoggerFromEnv(LogLevelInfo, "")
	if err != nil {
		t.Fatal(err)
	}
	if l.GetLevel() != LogLevelDebug {
		t.Errorf("level = %v, want debug", l.GetLevel())
	}
	if !l.noColor {
		t.Error("noColor should be set from env")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	l.Error("ignored")
	l.SetOutput(&bytes.Buffer{})
}

func TestSetOutputNilKeepsConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLoggerWithOptions(LogLevelInfo, "", true)
	if err != nil {
		t.Fatal(err)
	}
	l.SetOutput(&buf)
	l.SetOutput(nil)
	l.Error("still here")
	if !strings.Contains(buf.String(), "still here") {
		t.Errorf("console = %q", buf.String())
	}
}
