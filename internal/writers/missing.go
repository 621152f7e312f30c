// internal/writers/missing.go
package writers

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// MissingSink records the verbatim rows no reference source could
// classify, followed by a per-ASV miss-count summary.
type MissingSink struct {
	w  *bufio.Writer
	c  io.Closer
	n  int
	by map[string]int
	// order preserves first-miss ASV order for the summary block.
	order []string
}

// CreateMissing opens (truncating) the missing-hit file at path.
func CreateMissing(path string) (*MissingSink, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &MissingSink{
		w:  bufio.NewWriter(fh),
		c:  fh,
		by: make(map[string]int),
	}, nil
}

// NewMissingSink wraps an arbitrary writer (used by tests).
func NewMissingSink(w io.Writer) *MissingSink {
	return &MissingSink{w: bufio.NewWriter(w), by: make(map[string]int)}
}

// Record writes the original line untouched and counts it against asv.
func (m *MissingSink) Record(asv, line string) error {
	if _, seen := m.by[asv]; !seen {
		m.order = append(m.order, asv)
	}
	m.by[asv]++
	m.n++
	_, err := fmt.Fprintln(m.w, line)
	return err
}

// Total reports how many rows were routed here.
func (m *MissingSink) Total() int { return m.n }

// Close appends the per-ASV summary and flushes.
func (m *MissingSink) Close() error {
	if m.n > 0 {
		if _, err := fmt.Fprintln(m.w, "# unresolved hits per ASV"); err != nil {
			return err
		}
		for _, asv := range m.order {
			if _, err := fmt.Fprintf(m.w, "%s\t%d\n", asv, m.by[asv]); err != nil {
				return err
			}
		}
	}
	if err := m.w.Flush(); err != nil {
		return err
	}
	if m.c != nil {
		return m.c.Close()
	}
	return nil
}
