package i2c

// Text trace format.
//
// One event per line:
//
//	<start>-<end> <COMMAND> [0xNN]
//
// COMMAND is one of the names returned by Kind.String. Address and data
// commands require a byte, all others must not carry one. Blank lines and
// lines starting with '#' are ignored.

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseLine parses a single trace line.
func ParseLine(line string) (Event, error) {
	line = strings.TrimSpace(line)
	rangeEnd := strings.IndexByte(line, ' ')
	if rangeEnd < 0 {
		return Event{}, fmt.Errorf("missing command in %q", line)
	}
	ss, es, err := parseRange(line[:rangeEnd])
	if err != nil {
		return Event{}, err
	}

	rest := strings.Fields(line[rangeEnd+1:])
	if len(rest) == 0 {
		return Event{}, fmt.Errorf("missing command in %q", line)
	}

	// Commands are one or two words; a trailing 0x token is the data byte.
	var dataTok string
	if last := rest[len(rest)-1]; strings.HasPrefix(strings.ToLower(last), "0x") {
		dataTok = last
		rest = rest[:len(rest)-1]
	}
	kind, err := ParseKind(strings.Join(rest, " "))
	if err != nil {
		return Event{}, err
	}

	ev := Event{Start: ss, End: es, Kind: kind}
	switch {
	case kind.HasData() && dataTok == "":
		return Event{}, fmt.Errorf("%s requires a data byte", kind)
	case !kind.HasData() && dataTok != "":
		return Event{}, fmt.Errorf("%s does not take a data byte", kind)
	case dataTok != "":
		v, err := strconv.ParseUint(dataTok[2:], 16, 8)
		if err != nil {
			return Event{}, fmt.Errorf("parse data byte %q: %w", dataTok, err)
		}
		ev.Data = byte(v)
	}
	return ev, nil
}

func parseRange(tok string) (uint64, uint64, error) {
	a, b, ok := strings.Cut(tok, "-")
	if !ok {
		return 0, 0, fmt.Errorf("sample range %q must be <start>-<end>", tok)
	}
	ss, err := strconv.ParseUint(a, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse start sample %q: %w", a, err)
	}
	es, err := strconv.ParseUint(b, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse end sample %q: %w", b, err)
	}
	if es < ss {
		return 0, 0, fmt.Errorf("sample range %q ends before it starts", tok)
	}
	return ss, es, nil
}

// ReadTrace reads a text trace until EOF.
func ReadTrace(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return events, nil
}

// WriteTrace writes events in the text trace format.
func WriteTrace(w io.Writer, events []Event) error {
	bw := bufio.NewWriter(w)
	for _, ev := range events {
		if _, err := fmt.Fprintln(bw, ev.String()); err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
	}
	return bw.Flush()
}
