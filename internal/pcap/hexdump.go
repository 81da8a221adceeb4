package pcap

// Hex dump utilities for capture records

import (
	"fmt"
	"strings"
)

// HexDump renders data in the layout of hexdump -C: offset, bytes in two
// halves, printable ASCII between bars.
func HexDump(data []byte, width int) string {
	if width <= 0 {
		width = 16
	}

	var sb strings.Builder
	for off := 0; off < len(data); off += width {
		row := data[off:min(off+width, len(data))]
		fmt.Fprintf(&sb, "%08x ", off)
		for j := 0; j < width; j++ {
			if j == width/2 {
				sb.WriteByte(' ')
			}
			if j < len(row) {
				fmt.Fprintf(&sb, " %02x", row[j])
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString("  |")
		for _, b := range row {
			if b < 0x20 || b > 0x7e {
				b = '.'
			}
			sb.WriteByte(b)
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

// FormatRecordHex labels the fields of an encoded I2C event record.
func FormatRecordHex(data []byte) string {
	if len(data) < EventLen {
		return HexDump(data, 16)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "kind:  %02x\n", data[0])
	fmt.Fprintf(&sb, "data:  %02x\n", data[1])
	fmt.Fprintf(&sb, "start: % x\n", data[2:10])
	fmt.Fprintf(&sb, "end:   % x\n", data[10:18])
	if len(data) > EventLen {
		sb.WriteString("trailing:\n")
		sb.WriteString(HexDump(data[EventLen:], 16))
	}
	return sb.String()
}
