// core/blast/row.go

// Package blast parses tabular hit rows of the 22-column -outfmt 6
// layout and prepares their free-text content for name resolution.
package blast

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldCount is the expected column count of the tabular layout:
// qseqid sseqid staxids sscinames scomnames sskingdoms pident length
// qlen slen mismatch gapopen gaps qstart qend sstart send stitle
// evalue bitscore qcovs qcovhsp.
const FieldCount = 22

// pidentIndex is the 0-based column of the percent identity value.
const pidentIndex = 6

// taxidIndex is the 0-based column of the subject taxonomy id.
const taxidIndex = 2

// Row is one parsed hit.
type Row struct {
	ASV     string   // query sequence id
	TaxID   string   // first subject taxid, "" if absent
	Percent float64  // percent identity in [0,100]
	Tokens  []string // whitespace tokens of the corrected line
	Raw     string   // the original line, uncorrected
}

// ParseRow validates and parses one input line after applying corr to
// it. A short row or an unparsable identity yields an error the caller
// should log and skip; neither aborts a run.
func ParseRow(line string, corr Corrections) (Row, error) {
	corrected := corr.Apply(line)
	fields := strings.Split(corrected, "\t")
	if len(fields) < FieldCount {
		return Row{}, fmt.Errorf("short row: %d of %d fields", len(fields), FieldCount)
	}
	pident, err := strconv.ParseFloat(strings.TrimSpace(fields[pidentIndex]), 64)
	if err != nil {
		return Row{}, fmt.Errorf("bad pident %q", fields[pidentIndex])
	}
	return Row{
		ASV:     fields[0],
		TaxID:   firstTaxID(fields[taxidIndex]),
		Percent: pident,
		Tokens:  Tokenize(corrected),
		Raw:     line,
	}, nil
}

// firstTaxID picks the first id of a possibly ";"-joined list and maps
// the N/A sentinel to empty.
func firstTaxID(s string) string {
	s, _, _ = strings.Cut(s, ";")
	s = strings.TrimSpace(s)
	if s == "N/A" {
		return ""
	}
	return s
}
