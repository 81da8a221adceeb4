package ddc

// Annotation output records.

// Category classifies an annotation.
type Category int

const (
	CategoryAddress  Category = iota // device address phase
	CategoryRegister                 // register offset and name
	CategoryFields                   // decoded register fields
	CategoryDebug                    // per-event state trace
)

// Annotation rows group categories for display.
const (
	RowDDC   = "ddc"
	RowDebug = "debug"
)

// Annotation is a human-readable record tied to a sample range.
type Annotation struct {
	Start    uint64   `json:"start"`
	End      uint64   `json:"end"`
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAddress:
		return "Address"
	case CategoryRegister:
		return "Register"
	case CategoryFields:
		return "Fields"
	case CategoryDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Row returns the display row the category belongs to.
func (c Category) Row() string {
	if c == CategoryDebug {
		return RowDebug
	}
	return RowDDC
}

// Sink receives annotations in emission order.
type Sink interface {
	Put(a Annotation)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(a Annotation)

// Put calls f(a).
func (f SinkFunc) Put(a Annotation) { f(a) }

// Collector is a Sink that keeps every annotation.
type Collector struct {
	Annotations []Annotation
}

// Put appends a.
func (c *Collector) Put(a Annotation) {
	c.Annotations = append(c.Annotations, a)
}
