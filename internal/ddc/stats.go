package ddc

import "github.com/tonylturner/ddcdec/internal/catalog"

// Stats counts what a Decoder has seen.
type Stats struct {
	Events       int // bus events fed
	Transactions int // transactions finalized and dispatched
	SCDC         int // finalized SCDC transactions
	HDCP         int // finalized HDCP transactions
	Unknown      int // transactions abandoned on an unrecognized address
	PointerOnly  int // offset written, then STOP with no data phase
	DataBytes    int // data bytes in finalized transactions
	Fields       int // Fields annotations emitted
	Undescribed  int // data bytes with no catalog field set
}

func (s *Stats) countFinalized(tx Transaction, fields int, undescribed int) {
	s.Transactions++
	switch tx.Protocol {
	case catalog.ProtocolSCDC:
		s.SCDC++
	case catalog.ProtocolHDCP:
		s.HDCP++
	}
	s.DataBytes += len(tx.Data)
	s.Fields += fields
	s.Undescribed += undescribed
}
