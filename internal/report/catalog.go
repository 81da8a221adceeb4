package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/tonylturner/ddcdec/internal/catalog"
)

// WriteCatalog lists a protocol's registers with their field tables.
func WriteCatalog(w io.Writer, c *catalog.Catalog, p catalog.Protocol) {
	regs := c.Registers(p)
	fmt.Fprintf(w, "%s registers (%d)\n", p, len(regs))
	if len(regs) == 0 {
		fmt.Fprintf(w, "  (none)\n")
		return
	}
	for _, reg := range regs {
		fmt.Fprintf(w, "  0x%02X %s\n", reg.Offset, reg.Definition.Name)
		for i, set := range reg.Definition.ByteFields {
			if len(set) == 0 {
				continue
			}
			if len(reg.Definition.ByteFields) > 1 {
				fmt.Fprintf(w, "    byte %d\n", i)
			}
			for _, field := range set {
				fmt.Fprintf(w, "      mask 0x%02X:", field.Mask)
				for _, v := range sortedValues(field.Values) {
					fmt.Fprintf(w, " [0x%02X] %s;", v, field.Values[v])
				}
				fmt.Fprintln(w)
			}
		}
	}
}

func sortedValues(values map[byte]string) []byte {
	keys := make([]byte, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
