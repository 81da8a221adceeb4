package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewProgressBar(t *testing.T) {
	pb := NewProgressBar(3, "decoding")
	if pb.total != 3 || pb.current != 0 {
		t.Errorf("total/current = %d/%d", pb.total, pb.current)
	}
	if !pb.enabled {
		t.Error("should be enabled by default")
	}
}

func TestProgressBarIncrement(t *testing.T) {
	var buf bytes.Buffer
	pb := NewProgressBar(2, "decoding")
	pb.SetOutput(&buf)

	pb.Increment("a.txt")
	pb.Increment("b.pcap")
	pb.Increment("extra")
	if pb.Current() != 2 {
		t.Errorf("current = %d, want 2 (clamped)", pb.Current())
	}
	out := buf.String()
	if !strings.Contains(out, "decoding [") || !strings.Contains(out, "2/2") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "b.pcap") {
		t.Errorf("output should name the last input: %q", out)
	}
}

func TestProgressBarConcurrent(t *testing.T) {
	pb := NewProgressBar(100, "")
	pb.SetOutput(&bytes.Buffer{})
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pb.Increment("")
		}()
	}
	wg.Wait()
	if pb.Current() != 100 {
		t.Errorf("current = %d, want 100", pb.Current())
	}
}

func TestProgressBarDisabled(t *testing.T) {
	var buf bytes.Buffer
	pb := NewProgressBar(1, "")
	pb.SetOutput(&buf)
	pb.Disable()
	pb.Increment("x")
	pb.Finish()
	if buf.Len() > 0 {
		t.Errorf("disabled bar wrote %q", buf.String())
	}
}

func TestProgressBarFinish(t *testing.T) {
	var buf bytes.Buffer
	pb := NewProgressBar(4, "")
	pb.SetOutput(&buf)
	pb.Finish()
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("Finish should end the line: %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		500 * time.Millisecond:  "500ms",
		1500 * time.Millisecond: "1.5s",
		90 * time.Second:        "1m30s",
	}
	for d, want := range tests {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
