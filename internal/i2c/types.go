package i2c

// I2C bus event types.
//
// Events are produced by an I2C protocol decoder (logic analyzer software,
// sigrok's i2c decoder, a capture file) and consumed in emission order.
// Every event spans a sample range [Start, End] on the acquisition timeline.

import (
	"fmt"
	"strings"
)

// Kind identifies an I2C bus event.
type Kind uint8

const (
	KindStart        Kind = 0x01 // START condition
	KindStartRepeat  Kind = 0x02 // repeated START (Sr)
	KindStop         Kind = 0x03 // STOP condition
	KindAddressWrite Kind = 0x04 // 8-bit address byte, R/W = 0
	KindAddressRead  Kind = 0x05 // 8-bit address byte, R/W = 1
	KindDataWrite    Kind = 0x06 // data byte, master to slave
	KindDataRead     Kind = 0x07 // data byte, slave to master
	KindAck          Kind = 0x08
	KindNack         Kind = 0x09
)

// Event is a single decoded I2C bus occurrence.
type Event struct {
	Start uint64 // first sample of the event
	End   uint64 // last sample of the event
	Kind  Kind
	Data  byte // address or data byte; zero for conditions and acks
}

// String returns the command name used by sigrok-style I2C decoders.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "START"
	case KindStartRepeat:
		return "START REPEAT"
	case KindStop:
		return "STOP"
	case KindAddressWrite:
		return "ADDRESS WRITE"
	case KindAddressRead:
		return "ADDRESS READ"
	case KindDataWrite:
		return "DATA WRITE"
	case KindDataRead:
		return "DATA READ"
	case KindAck:
		return "ACK"
	case KindNack:
		return "NACK"
	default:
		return "UNKNOWN"
	}
}

// HasData returns true for kinds that carry an address or data byte.
func (k Kind) HasData() bool {
	switch k {
	case KindAddressWrite, KindAddressRead, KindDataWrite, KindDataRead:
		return true
	default:
		return false
	}
}

// IsKnown returns true for recognized event kinds.
func (k Kind) IsKnown() bool {
	return k >= KindStart && k <= KindNack
}

// ParseKind maps a command name back to its Kind.
func ParseKind(name string) (Kind, error) {
	norm := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	for k := KindStart; k <= KindNack; k++ {
		if k.String() == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown I2C command %q", name)
}

// String formats the event the way trace files store it.
func (e Event) String() string {
	if e.Kind.HasData() {
		return fmt.Sprintf("%d-%d %s 0x%02X", e.Start, e.End, e.Kind, e.Data)
	}
	return fmt.Sprintf("%d-%d %s", e.Start, e.End, e.Kind)
}

// Start builds a START condition event.
func Start(ss, es uint64) Event { return Event{Start: ss, End: es, Kind: KindStart} }

// StartRepeat builds a repeated START event.
func StartRepeat(ss, es uint64) Event { return Event{Start: ss, End: es, Kind: KindStartRepeat} }

// Stop builds a STOP condition event.
func Stop(ss, es uint64) Event { return Event{Start: ss, End: es, Kind: KindStop} }

// Ack builds an ACK event.
func Ack(ss, es uint64) Event { return Event{Start: ss, End: es, Kind: KindAck} }

// Nack builds a NACK event.
func Nack(ss, es uint64) Event { return Event{Start: ss, End: es, Kind: KindNack} }

// AddressWrite builds a write address phase for the 8-bit address addr.
func AddressWrite(ss, es uint64, addr byte) Event {
	return Event{Start: ss, End: es, Kind: KindAddressWrite, Data: addr}
}

// AddressRead builds a read address phase for the 8-bit address addr.
func AddressRead(ss, es uint64, addr byte) Event {
	return Event{Start: ss, End: es, Kind: KindAddressRead, Data: addr}
}

// DataWrite builds a master-to-slave data byte event.
func DataWrite(ss, es uint64, b byte) Event {
	return Event{Start: ss, End: es, Kind: KindDataWrite, Data: b}
}

// DataRead builds a slave-to-master data byte event.
func DataRead(ss, es uint64, b byte) Event {
	return Event{Start: ss, End: es, Kind: KindDataRead, Data: b}
}
