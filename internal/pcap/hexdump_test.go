package pcap

import (
	"strings"
	"testing"
)

func TestHexDump(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x41}

	dump := HexDump(data, 16)

	lines := strings.Split(strings.TrimSuffix(dump, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), dump)
	}
	if !strings.HasPrefix(lines[0], "00000000  00 01 02 03 04 05 06 07  08 09 0a") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "|................|") {
		t.Errorf("first line = %q, want dotted ASCII column", lines[0])
	}
	if !strings.HasPrefix(lines[1], "00000010  41 ") || !strings.HasSuffix(lines[1], "|A|") {
		t.Errorf("second line = %q", lines[1])
	}
	if len(lines[0]) != len(lines[1])+15 {
		t.Errorf("ASCII column not aligned:\n%s", dump)
	}
}

func TestFormatRecordHex(t *testing.T) {
	data := make([]byte, EventLen)
	data[0] = 0x06
	data[1] = 0x20
	data[9] = 0x05
	data[17] = 0x07

	out := FormatRecordHex(data)
	for _, want := range []string{"kind:  06", "data:  20", "start: 00 00 00 00 00 00 00 05", "end:   00 00 00 00 00 00 00 07"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatRecordHex() = %q, want %q", out, want)
		}
	}

	short := FormatRecordHex([]byte{0x01})
	if !strings.HasPrefix(short, "00000000  01 ") {
		t.Errorf("short record should fall back to HexDump, got %q", short)
	}
}
