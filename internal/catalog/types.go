// Package catalog provides the DDC register catalog and bit-field decoding.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Protocol identifies a DDC sub-protocol.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolSCDC
	ProtocolHDCP
)

// 8-bit I2C addresses (R/W bit included) of the DDC sub-protocols.
const (
	AddrSCDCWrite byte = 0xA8
	AddrSCDCRead  byte = 0xA9
	AddrHDCPWrite byte = 0x74
	AddrHDCPRead  byte = 0x75
)

// String returns the short protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtocolSCDC:
		return "SCDC"
	case ProtocolHDCP:
		return "HDCP"
	default:
		return "Unknown"
	}
}

// ParseProtocol accepts "scdc" or "hdcp" in any case.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scdc":
		return ProtocolSCDC, nil
	case "hdcp":
		return ProtocolHDCP, nil
	default:
		return ProtocolUnknown, fmt.Errorf("unknown protocol %q (want scdc or hdcp)", s)
	}
}

// Field maps the masked value of a byte to a description.
type Field struct {
	Mask   byte
	Values map[byte]string
}

// ByteFieldSet describes one data byte of a register. Masks may overlap.
type ByteFieldSet []Field

// RegisterDefinition names a register and describes its data bytes.
// ByteFields[i] applies to the i-th data byte after the offset.
type RegisterDefinition struct {
	Name       string
	ByteFields []ByteFieldSet
}

// FieldSet returns the field set for byte position i, if any.
func (r *RegisterDefinition) FieldSet(i int) (ByteFieldSet, bool) {
	if r == nil || i < 0 || i >= len(r.ByteFields) {
		return nil, false
	}
	return r.ByteFields[i], true
}

// Register pairs an offset with its definition, for listings.
type Register struct {
	Offset     byte
	Definition *RegisterDefinition
}

// Catalog maps protocol and offset to register definitions.
// A Catalog is never modified after construction and is safe to share.
type Catalog struct {
	tables map[Protocol]map[byte]*RegisterDefinition
}

// New builds a catalog from per-protocol tables. The tables are copied.
func New(tables map[Protocol]map[byte]*RegisterDefinition) *Catalog {
	c := &Catalog{tables: make(map[Protocol]map[byte]*RegisterDefinition, len(tables))}
	for proto, regs := range tables {
		cp := make(map[byte]*RegisterDefinition, len(regs))
		for off, def := range regs {
			cp[off] = def
		}
		c.tables[proto] = cp
	}
	return c
}

// Lookup returns the register definition for protocol and offset.
// A miss is a normal result: the register is simply not described.
func (c *Catalog) Lookup(p Protocol, offset byte) (*RegisterDefinition, bool) {
	if c == nil {
		return nil, false
	}
	def, ok := c.tables[p][offset]
	return def, ok
}

// With returns a new catalog with def registered at protocol/offset,
// replacing any existing entry. The receiver is unchanged.
func (c *Catalog) With(p Protocol, offset byte, def *RegisterDefinition) *Catalog {
	next := New(c.tables)
	if next.tables[p] == nil {
		next.tables[p] = make(map[byte]*RegisterDefinition)
	}
	next.tables[p][offset] = def
	return next
}

// Registers lists a protocol's registers sorted by offset.
func (c *Catalog) Registers(p Protocol) []Register {
	if c == nil {
		return nil
	}
	regs := make([]Register, 0, len(c.tables[p]))
	for off, def := range c.tables[p] {
		regs = append(regs, Register{Offset: off, Definition: def})
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].Offset < regs[j].Offset })
	return regs
}
