package i2c

import "fmt"

// Validate checks that a stream is representable: known kinds, well-formed
// sample ranges, and positions that never move backwards.
func Validate(events []Event) error {
	var last uint64
	for i, ev := range events {
		if !ev.Kind.IsKnown() {
			return fmt.Errorf("event %d: unknown kind 0x%02X", i, uint8(ev.Kind))
		}
		if ev.End < ev.Start {
			return fmt.Errorf("event %d: end sample %d before start sample %d", i, ev.End, ev.Start)
		}
		if ev.Start < last {
			return fmt.Errorf("event %d: start sample %d precedes previous event (%d)", i, ev.Start, last)
		}
		last = ev.Start
	}
	return nil
}
