package pcap

// gopacket layer for one I2C bus event per capture record

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/tonylturner/ddcdec/internal/i2c"
)

// LinkTypeI2C is the link type written to capture headers (DLT_USER0).
const LinkTypeI2C = layers.LinkType(147)

// EventLen is the encoded size of an I2CEvent: kind, data, start, end.
const EventLen = 18

// LayerTypeI2CEvent decodes record payloads into I2CEvent layers.
var LayerTypeI2CEvent = gopacket.RegisterLayerType(2147, gopacket.LayerTypeMetadata{
	Name:    "I2CEvent",
	Decoder: gopacket.DecodeFunc(decodeI2CEvent),
})

// I2CEvent is a single decoded bus event.
//
//	offset 0  kind  (i2c.Kind)
//	offset 1  data  (0 when the kind carries none)
//	offset 2  start sample, big endian uint64
//	offset 10 end sample, big endian uint64
type I2CEvent struct {
	layers.BaseLayer
	Kind  i2c.Kind
	Data  byte
	Start uint64
	End   uint64
}

// NewI2CEvent wraps a bus event for serialization.
func NewI2CEvent(ev i2c.Event) *I2CEvent {
	return &I2CEvent{Kind: ev.Kind, Data: ev.Data, Start: ev.Start, End: ev.End}
}

// Event converts the layer back to a bus event.
func (e *I2CEvent) Event() i2c.Event {
	ev := i2c.Event{Start: e.Start, End: e.End, Kind: e.Kind}
	if e.Kind.HasData() {
		ev.Data = e.Data
	}
	return ev
}

func (e *I2CEvent) LayerType() gopacket.LayerType { return LayerTypeI2CEvent }

func (e *I2CEvent) CanDecode() gopacket.LayerClass { return LayerTypeI2CEvent }

func (e *I2CEvent) NextLayerType() gopacket.LayerType {
	if len(e.Payload) == 0 {
		return gopacket.LayerTypeZero
	}
	return gopacket.LayerTypePayload
}

// DecodeFromBytes decodes one event record.
func (e *I2CEvent) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < EventLen {
		df.SetTruncated()
		return fmt.Errorf("I2C event record too short: %d bytes, want %d", len(data), EventLen)
	}
	kind := i2c.Kind(data[0])
	if !kind.IsKnown() {
		return fmt.Errorf("unknown I2C event kind 0x%02X", data[0])
	}
	e.Kind = kind
	e.Data = data[1]
	e.Start = binary.BigEndian.Uint64(data[2:10])
	e.End = binary.BigEndian.Uint64(data[10:18])
	e.BaseLayer = layers.BaseLayer{Contents: data[:EventLen], Payload: data[EventLen:]}
	return nil
}

// SerializeTo writes the event record into b.
func (e *I2CEvent) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	buf, err := b.PrependBytes(EventLen)
	if err != nil {
		return err
	}
	buf[0] = byte(e.Kind)
	buf[1] = 0
	if e.Kind.HasData() {
		buf[1] = e.Data
	}
	binary.BigEndian.PutUint64(buf[2:10], e.Start)
	binary.BigEndian.PutUint64(buf[10:18], e.End)
	return nil
}

func decodeI2CEvent(data []byte, p gopacket.PacketBuilder) error {
	e := &I2CEvent{}
	if err := e.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(e)
	if len(e.Payload) == 0 {
		return nil
	}
	return p.NextDecoder(gopacket.LayerTypePayload)
}
