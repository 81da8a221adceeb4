package i2c

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlEvent is the on-disk form of an Event in YAML traces.
type yamlEvent struct {
	Start uint64 `yaml:"start"`
	End   uint64 `yaml:"end"`
	Event string `yaml:"event"`
	Data  *uint8 `yaml:"data,omitempty"`
}

// yamlTrace is the YAML trace document.
type yamlTrace struct {
	Events []yamlEvent `yaml:"events"`
}

// ReadYAMLTrace reads a YAML trace document.
func ReadYAMLTrace(r io.Reader) ([]Event, error) {
	var doc yamlTrace
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse trace YAML: %w", err)
	}

	events := make([]Event, 0, len(doc.Events))
	for i, ye := range doc.Events {
		kind, err := ParseKind(ye.Event)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		ev := Event{Start: ye.Start, End: ye.End, Kind: kind}
		switch {
		case kind.HasData() && ye.Data == nil:
			return nil, fmt.Errorf("event %d: %s requires data", i, kind)
		case !kind.HasData() && ye.Data != nil:
			return nil, fmt.Errorf("event %d: %s does not take data", i, kind)
		case ye.Data != nil:
			ev.Data = *ye.Data
		}
		events = append(events, ev)
	}
	return events, nil
}

// WriteYAMLTrace writes events as a YAML trace document.
func WriteYAMLTrace(w io.Writer, events []Event) error {
	doc := yamlTrace{Events: make([]yamlEvent, 0, len(events))}
	for _, ev := range events {
		ye := yamlEvent{Start: ev.Start, End: ev.End, Event: ev.Kind.String()}
		if ev.Kind.HasData() {
			b := ev.Data
			ye.Data = &b
		}
		doc.Events = append(doc.Events, ye)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode trace YAML: %w", err)
	}
	return enc.Close()
}
