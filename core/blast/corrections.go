// core/blast/corrections.go
package blast

import "strings"

// Correction is one exact-match substitution applied to a raw line
// before any splitting. These fix verbatim misspellings that recur in
// reference descriptions and would otherwise defeat genus matching.
type Correction struct {
	From string
	To   string
}

// Corrections is an ordered substitution list; entries apply in order.
type Corrections []Correction

// Apply rewrites every occurrence of each correction in line.
func (cs Corrections) Apply(line string) string {
	for _, c := range cs {
		line = strings.ReplaceAll(line, c.From, c.To)
	}
	return line
}

// DefaultCorrections carries the misspellings known from production
// reference data.
func DefaultCorrections() Corrections {
	return Corrections{
		{From: "Petroschmidtia albonotatus", To: "Petroschmidtia albonotata"},
	}
}
