package ddc

import "github.com/tonylturner/ddcdec/internal/catalog"

// State is a transaction state machine state.
//
// Reads that re-send the offset inside the data phase (a "read with offset"
// and its write counterpart) would need two more states; no DDC register
// seen so far requires them.
type State int

const (
	StateIdle State = iota
	StateAwaitingSlaveAddress
	StateAwaitingOffset
	StateOffsetReceived
	StateReadingRegister
	StateWritingRegister
)

// String returns the state name used in debug annotations.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAwaitingSlaveAddress:
		return "GET SLAVE ADDR"
	case StateAwaitingOffset:
		return "GET OFFSET"
	case StateOffsetReceived:
		return "OFFSET RECEIVED"
	case StateReadingRegister:
		return "READ REGISTER"
	case StateWritingRegister:
		return "WRITE REGISTER"
	default:
		return "UNKNOWN"
	}
}

// Direction is the data direction of a transaction.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionWrite
	DirectionRead
)

// String returns "write", "read" or "none".
func (d Direction) String() string {
	switch d {
	case DirectionWrite:
		return "write"
	case DirectionRead:
		return "read"
	default:
		return "none"
	}
}

// Transaction is the context of one logical DDC transaction.
type Transaction struct {
	Protocol  catalog.Protocol
	Offset    byte
	HasOffset bool
	Direction Direction
	Data      []byte
	Start     uint64 // first sample of the opening START
	End       uint64 // last sample seen so far
}

// resolveAddress maps an address phase to a protocol and direction.
func resolveAddress(read bool, addr byte) (catalog.Protocol, Direction, bool) {
	switch {
	case !read && addr == catalog.AddrSCDCWrite:
		return catalog.ProtocolSCDC, DirectionWrite, true
	case !read && addr == catalog.AddrHDCPWrite:
		return catalog.ProtocolHDCP, DirectionWrite, true
	case read && addr == catalog.AddrHDCPRead:
		return catalog.ProtocolHDCP, DirectionRead, true
	case read && addr == catalog.AddrSCDCRead:
		return catalog.ProtocolSCDC, DirectionRead, true
	default:
		return catalog.ProtocolUnknown, DirectionNone, false
	}
}
