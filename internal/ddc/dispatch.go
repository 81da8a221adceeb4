package ddc

import "github.com/tonylturner/ddcdec/internal/catalog"

// Dispatcher turns completed transactions into field annotations.
type Dispatcher struct {
	catalog *catalog.Catalog
}

// NewDispatcher creates a dispatcher over a read-only catalog.
func NewDispatcher(c *catalog.Catalog) *Dispatcher {
	return &Dispatcher{catalog: c}
}

// Dispatch decodes tx's data bytes into Fields annotations spanning the
// transaction. Registers or byte positions absent from the catalog yield
// nothing.
func (d *Dispatcher) Dispatch(tx Transaction) []Annotation {
	switch tx.Protocol {
	case catalog.ProtocolSCDC:
		return d.decodeRegister(tx)
	case catalog.ProtocolHDCP:
		// Address space recognized, no field table yet.
		return nil
	case catalog.ProtocolUnknown:
		return nil
	default:
		return nil
	}
}

func (d *Dispatcher) decodeRegister(tx Transaction) []Annotation {
	if !tx.HasOffset {
		return nil
	}
	def, ok := d.catalog.Lookup(tx.Protocol, tx.Offset)
	if !ok {
		return nil
	}

	var out []Annotation
	for i, b := range tx.Data {
		fields, ok := def.FieldSet(i)
		if !ok {
			continue
		}
		for _, desc := range catalog.DecodeByte(b, fields) {
			out = append(out, Annotation{
				Start:    tx.Start,
				End:      tx.End,
				Category: CategoryFields,
				Text:     desc,
			})
		}
	}
	return out
}
