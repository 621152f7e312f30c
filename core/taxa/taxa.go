// core/taxa/taxa.go
package taxa

// Unknown marks a rank that could not be recovered from any source.
const Unknown = "Unknown"

// Rank is one of the five taxonomic levels an assignment is made at.
type Rank int

const (
	Class Rank = iota
	Order
	Family
	Genus
	Species
)

// Ranks lists all levels in output-column order.
var Ranks = [...]Rank{Class, Order, Family, Genus, Species}

func (r Rank) String() string {
	switch r {
	case Class:
		return "Class"
	case Order:
		return "Order"
	case Family:
		return "Family"
	case Genus:
		return "Genus"
	case Species:
		return "Species"
	}
	return "unknown"
}

// Source identifies which reference resolved a hit.
type Source string

const (
	SourceFishbase Source = "fishbase"
	SourceWorms    Source = "worms"
	SourceTaxonomy Source = "taxonomy"
)

// Lineage is the five-rank path for one taxon. Absent ranks hold Unknown
// (or are empty before finalization); Species, when present, is always
// "Genus epithet" built from the same Genus value.
type Lineage struct {
	Class   string
	Order   string
	Family  string
	Genus   string
	Species string
}

// At returns the value stored for rank r.
func (l Lineage) At(r Rank) string {
	switch r {
	case Class:
		return l.Class
	case Order:
		return l.Order
	case Family:
		return l.Family
	case Genus:
		return l.Genus
	case Species:
		return l.Species
	}
	return ""
}
