package pcap

// Reading and writing I2C event captures

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcapgo"

	"github.com/tonylturner/ddcdec/internal/i2c"
)

const snapLen = 65535

// Record is one capture record with its raw bytes.
type Record struct {
	Index     int
	Timestamp time.Time
	Raw       []byte
	Event     i2c.Event
}

// recordTime maps a start sample onto the record timestamp (one sample per microsecond).
func recordTime(sample uint64) time.Time {
	return time.UnixMicro(int64(sample)).UTC()
}

// WriteCapture writes one record per event.
func WriteCapture(w io.Writer, events []i2c.Event) error {
	writer := pcapgo.NewWriter(w)
	if err := writer.WriteFileHeader(snapLen, LinkTypeI2C); err != nil {
		return fmt.Errorf("write pcap header: %w", err)
	}

	opts := gopacket.SerializeOptions{}
	for i, ev := range events {
		buffer := gopacket.NewSerializeBuffer()
		if err := gopacket.SerializeLayers(buffer, opts, NewI2CEvent(ev)); err != nil {
			return fmt.Errorf("serialize event %d: %w", i, err)
		}
		data := buffer.Bytes()
		ci := gopacket.CaptureInfo{
			Timestamp:     recordTime(ev.Start),
			CaptureLength: len(data),
			Length:        len(data),
		}
		if err := writer.WritePacket(ci, data); err != nil {
			return fmt.Errorf("write event %d: %w", i, err)
		}
	}
	return nil
}

// WriteCaptureFile creates path and writes events to it.
func WriteCaptureFile(path string, events []i2c.Event) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pcap: %w", err)
	}
	if err := WriteCapture(file, events); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadRecords decodes every record of a capture.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open pcap: %w", err)
	}
	if reader.LinkType() != LinkTypeI2C {
		return nil, fmt.Errorf("capture has link type %d, want %d", reader.LinkType(), LinkTypeI2C)
	}

	var records []Record
	for {
		data, ci, err := reader.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(records), err)
		}
		packet := gopacket.NewPacket(data, LayerTypeI2CEvent, gopacket.Default)
		if errLayer := packet.ErrorLayer(); errLayer != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(records), errLayer.Error())
		}
		layer, ok := packet.Layer(LayerTypeI2CEvent).(*I2CEvent)
		if !ok {
			return nil, fmt.Errorf("decode record %d: no I2C event layer", len(records))
		}
		records = append(records, Record{
			Index:     len(records),
			Timestamp: ci.Timestamp,
			Raw:       data,
			Event:     layer.Event(),
		})
	}
	return records, nil
}

// ReadCapture returns the events stored in a capture.
func ReadCapture(r io.Reader) ([]i2c.Event, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}
	events := make([]i2c.Event, len(records))
	for i, rec := range records {
		events[i] = rec.Event
	}
	return events, nil
}

// ReadCaptureFile opens path and reads its events.
func ReadCaptureFile(path string) ([]i2c.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pcap: %w", err)
	}
	defer file.Close()
	return ReadCapture(file)
}

// DumpCapture writes every record as its event line followed by a hex dump.
func DumpCapture(r io.Reader, w io.Writer) error {
	records, err := ReadRecords(r)
	if err != nil {
		return err
	}
	for _, rec := range records {
		fmt.Fprintf(w, "#%d %s %s\n", rec.Index, rec.Timestamp.Format(time.RFC3339Nano), rec.Event)
		fmt.Fprint(w, FormatRecordHex(rec.Raw))
	}
	return nil
}
