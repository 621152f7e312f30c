// internal/output/rows.go
package output

import (
	"fmt"
	"io"
	"strings"
)

// Row is one flat output record per ASV.
type Row struct {
	ASV     string
	Class   string
	Order   string
	Family  string
	Genus   string
	Species string

	// Percent is the species-rank representative identity; it is only
	// rounded at presentation time.
	Percent float64

	IncludedSpecies []string
	Sources         []string
}

// FormatRowTSV returns the nine output columns (no trailing newline).
func FormatRowTSV(r Row) string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s",
		r.ASV, r.Class, r.Order, r.Family, r.Genus, r.Species,
		r.Percent,
		strings.Join(r.IncludedSpecies, ", "),
		strings.Join(r.Sources, ", "),
	)
}

// StreamTSV writes rows from in until the channel closes.
func StreamTSV(w io.Writer, in <-chan Row, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}
