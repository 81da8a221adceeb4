// Package ddc reconstructs DDC (SCDC/HDCP) register transactions from I2C
// bus events and annotates them with decoded register fields.
package ddc

import (
	"fmt"

	"github.com/tonylturner/ddcdec/internal/catalog"
	"github.com/tonylturner/ddcdec/internal/i2c"
)

// Decoder is the transaction state machine. It processes one event at a time
// and is not safe for concurrent use; use one Decoder per event stream.
type Decoder struct {
	catalog    *catalog.Catalog
	dispatcher *Dispatcher
	sink       Sink
	cfg        config

	state State
	tx    *Transaction
	stats Stats
}

// NewDecoder creates a decoder writing annotations to sink.
func NewDecoder(c *catalog.Catalog, sink Sink, opts ...Option) *Decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if sink == nil {
		sink = SinkFunc(func(Annotation) {})
	}
	return &Decoder{
		catalog:    c,
		dispatcher: NewDispatcher(c),
		sink:       sink,
		cfg:        cfg,
		state:      StateIdle,
	}
}

// State returns the current state.
func (d *Decoder) State() State {
	return d.state
}

// Stats returns a snapshot of the decoder counters.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Feed processes a single bus event. Events that do not fit the current
// state are ignored.
func (d *Decoder) Feed(ev i2c.Event) {
	d.stats.Events++
	if d.cfg.debug {
		d.put(ev.Start, ev.End, CategoryDebug, d.state.String()+" "+ev.Kind.String())
	}
	if d.tx != nil && ev.End > d.tx.End {
		d.tx.End = ev.End
	}

	if d.state == StateIdle {
		if ev.Kind == i2c.KindStart {
			d.begin(ev)
		}
		return
	}

	switch ev.Kind {
	case i2c.KindAck, i2c.KindNack:
		return
	}

	switch d.state {
	case StateAwaitingSlaveAddress:
		d.onAddress(ev)
	case StateAwaitingOffset:
		d.onOffset(ev)
	case StateOffsetReceived:
		d.onOffsetReceived(ev)
	case StateReadingRegister, StateWritingRegister:
		d.onData(ev)
	}
}

// FeedAll processes events in order.
func (d *Decoder) FeedAll(events []i2c.Event) {
	for _, ev := range events {
		d.Feed(ev)
	}
}

// Flush ends the stream. A transaction cut off inside its data phase is
// dispatched with the bytes seen so far; anything earlier is dropped.
func (d *Decoder) Flush() {
	switch d.state {
	case StateReadingRegister, StateWritingRegister:
		d.finish()
	case StateIdle:
	default:
		d.abandon()
	}
}

func (d *Decoder) begin(ev i2c.Event) {
	d.tx = &Transaction{Start: ev.Start, End: ev.End}
	d.state = StateAwaitingSlaveAddress
}

func (d *Decoder) onAddress(ev i2c.Event) {
	var read bool
	switch ev.Kind {
	case i2c.KindAddressWrite:
	case i2c.KindAddressRead:
		read = true
	case i2c.KindStop:
		d.abandon()
		return
	default:
		return
	}

	repeated := d.tx.HasOffset
	proto, dir, ok := resolveAddress(read, ev.Data)
	if !ok {
		// Unrecognized device: wait for STOP.
		if repeated && d.cfg.strictRepeatedStart {
			d.tx.Protocol = catalog.ProtocolUnknown
		}
		return
	}
	if repeated && d.cfg.strictRepeatedStart && proto != d.tx.Protocol {
		d.tx.Protocol = catalog.ProtocolUnknown
		return
	}

	d.tx.Protocol = proto
	d.tx.Direction = dir
	if proto == catalog.ProtocolSCDC {
		d.put(ev.Start, ev.End, CategoryAddress,
			fmt.Sprintf("%s %s — Address: 0x%02X", proto, dir, ev.Data))
	}

	switch {
	case read:
		d.state = StateReadingRegister
	case repeated:
		// The offset is already set; what follows is register data.
		d.state = StateOffsetReceived
	default:
		d.state = StateAwaitingOffset
	}
}

func (d *Decoder) onOffset(ev i2c.Event) {
	switch ev.Kind {
	case i2c.KindDataWrite:
		d.tx.Offset = ev.Data
		d.tx.HasOffset = true
		d.put(ev.Start, ev.End, CategoryRegister, d.registerText(ev.Data))
		d.state = StateOffsetReceived
	case i2c.KindStop:
		d.abandon()
	}
}

func (d *Decoder) onOffsetReceived(ev i2c.Event) {
	switch ev.Kind {
	case i2c.KindStartRepeat:
		// Protocol and offset carry over into the next address phase.
		d.state = StateAwaitingSlaveAddress
	case i2c.KindDataWrite:
		d.tx.Data = append(d.tx.Data, ev.Data)
		d.state = StateWritingRegister
	case i2c.KindStop:
		d.stats.PointerOnly++
		d.reset()
	}
}

func (d *Decoder) onData(ev i2c.Event) {
	switch ev.Kind {
	case i2c.KindDataRead, i2c.KindDataWrite:
		d.tx.Data = append(d.tx.Data, ev.Data)
	case i2c.KindStop:
		d.finish()
	case i2c.KindStartRepeat:
		d.finish()
		// The repeated START opens an unrelated transaction.
		d.begin(ev)
	}
}

func (d *Decoder) registerText(offset byte) string {
	if def, ok := d.catalog.Lookup(d.tx.Protocol, offset); ok {
		return fmt.Sprintf("Register: %s (0x%02X)", def.Name, offset)
	}
	return fmt.Sprintf("Register: 0x%02X", offset)
}

// finish dispatches the open transaction and returns to Idle.
func (d *Decoder) finish() {
	tx := *d.tx
	anns := d.dispatcher.Dispatch(tx)
	for _, a := range anns {
		d.sink.Put(a)
	}
	d.stats.countFinalized(tx, len(anns), d.undescribed(tx))
	if d.cfg.observer != nil {
		d.cfg.observer(tx)
	}
	d.reset()
}

// abandon drops a transaction that never reached a data phase.
func (d *Decoder) abandon() {
	if d.tx != nil && d.tx.Protocol == catalog.ProtocolUnknown {
		d.stats.Unknown++
	}
	d.reset()
}

func (d *Decoder) reset() {
	d.tx = nil
	d.state = StateIdle
}

func (d *Decoder) undescribed(tx Transaction) int {
	def, ok := d.catalog.Lookup(tx.Protocol, tx.Offset)
	if !ok || !tx.HasOffset {
		return len(tx.Data)
	}
	n := 0
	for i := range tx.Data {
		if set, ok := def.FieldSet(i); !ok || len(set) == 0 {
			n++
		}
	}
	return n
}

func (d *Decoder) put(start, end uint64, cat Category, text string) {
	d.sink.Put(Annotation{Start: start, End: end, Category: cat, Text: text})
}

// DecodeAll runs events through a fresh Decoder, flushes it, and returns
// every annotation produced.
func DecodeAll(c *catalog.Catalog, events []i2c.Event, opts ...Option) []Annotation {
	var col Collector
	dec := NewDecoder(c, &col, opts...)
	dec.FeedAll(events)
	dec.Flush()
	return col.Annotations
}
