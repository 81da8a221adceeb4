package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tonylturner/ddcdec/internal/catalog"
	"github.com/tonylturner/ddcdec/internal/ddc"
)

// RegisterCount tallies finalized transactions against one register.
type RegisterCount struct {
	Protocol string `json:"protocol"`
	Offset   string `json:"offset"`
	Name     string `json:"name,omitempty"`
	Reads    int    `json:"reads"`
	Writes   int    `json:"writes"`
}

// Summary describes one decoded input.
type Summary struct {
	Input        string          `json:"input"`
	GeneratedAt  string          `json:"generated_at"`
	Events       int             `json:"events"`
	Transactions int             `json:"transactions"`
	SCDC         int             `json:"scdc"`
	HDCP         int             `json:"hdcp"`
	Unknown      int             `json:"unknown"`
	PointerOnly  int             `json:"pointer_only"`
	DataBytes    int             `json:"data_bytes"`
	Fields       int             `json:"fields"`
	Undescribed  int             `json:"undescribed"`
	Registers    []RegisterCount `json:"registers,omitempty"`
}

type registerKey struct {
	protocol catalog.Protocol
	offset   byte
}

// BuildSummary combines decoder stats with the finalized transactions.
func BuildSummary(input string, stats ddc.Stats, txs []ddc.Transaction, c *catalog.Catalog) Summary {
	s := Summary{
		Input:        input,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Events:       stats.Events,
		Transactions: stats.Transactions,
		SCDC:         stats.SCDC,
		HDCP:         stats.HDCP,
		Unknown:      stats.Unknown,
		PointerOnly:  stats.PointerOnly,
		DataBytes:    stats.DataBytes,
		Fields:       stats.Fields,
		Undescribed:  stats.Undescribed,
	}

	counts := map[registerKey]*RegisterCount{}
	var keys []registerKey
	for _, tx := range txs {
		if !tx.HasOffset {
			continue
		}
		key := registerKey{tx.Protocol, tx.Offset}
		rc, ok := counts[key]
		if !ok {
			rc = &RegisterCount{Protocol: tx.Protocol.String(), Offset: fmt.Sprintf("0x%02X", tx.Offset)}
			if def, found := c.Lookup(tx.Protocol, tx.Offset); found {
				rc.Name = def.Name
			}
			counts[key] = rc
			keys = append(keys, key)
		}
		switch tx.Direction {
		case ddc.DirectionRead:
			rc.Reads++
		case ddc.DirectionWrite:
			rc.Writes++
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].protocol != keys[j].protocol {
			return keys[i].protocol < keys[j].protocol
		}
		return keys[i].offset < keys[j].offset
	})
	for _, key := range keys {
		s.Registers = append(s.Registers, *counts[key])
	}
	return s
}

// WriteSummary renders a summary as text.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Summary: %s\n", s.Input)
	fmt.Fprintf(w, "  Events: %d\n", s.Events)
	fmt.Fprintf(w, "  Transactions: %d (SCDC %d, HDCP %d)\n", s.Transactions, s.SCDC, s.HDCP)
	fmt.Fprintf(w, "  Unknown addresses: %d\n", s.Unknown)
	fmt.Fprintf(w, "  Pointer-only writes: %d\n", s.PointerOnly)
	fmt.Fprintf(w, "  Data bytes: %d (%d undescribed)\n", s.DataBytes, s.Undescribed)
	fmt.Fprintf(w, "  Field annotations: %d\n", s.Fields)
	if len(s.Registers) == 0 {
		return
	}
	fmt.Fprintf(w, "  Registers:\n")
	for _, rc := range s.Registers {
		name := rc.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "    %s %s %-28s reads=%d writes=%d\n", rc.Protocol, rc.Offset, name, rc.Reads, rc.Writes)
	}
}
