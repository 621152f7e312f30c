// core/refindex/index.go
package refindex

// Ranks is the genus-level slice of a lineage a reference source knows.
type Ranks struct {
	Family string
	Order  string
	Class  string
}

// GenusRow is one row of a source's genus table.
type GenusRow struct {
	Genus  string
	Family string
	Order  string
	Class  string
}

// SynonymRow maps a free-text (genus, species) pair to a species code.
type SynonymRow struct {
	Genus   string
	Species string
	Code    string
}

// SpeciesRow maps a species code to its canonical "Genus epithet" name.
type SpeciesRow struct {
	Code string
	Name string
}

// Index is one reference source's lookup tables, read-only after New.
type Index struct {
	genera   map[string]Ranks
	synonyms map[string]string // "SynGenus SynSpecies" -> code
	species  map[string]string // code -> canonical name
}

// New builds an Index from already-loaded tabular data. Grouping by
// genus keeps the first row encountered, in loader order, so repeated
// builds from the same tables are deterministic. Synonym and species
// tables may be nil for sources without synonym support.
func New(genera []GenusRow, synonyms []SynonymRow, species []SpeciesRow) *Index {
	ix := &Index{
		genera:   make(map[string]Ranks, len(genera)),
		synonyms: make(map[string]string, len(synonyms)),
		species:  make(map[string]string, len(species)),
	}
	for _, g := range genera {
		if g.Genus == "" {
			continue
		}
		if _, dup := ix.genera[g.Genus]; dup {
			continue
		}
		ix.genera[g.Genus] = Ranks{Family: g.Family, Order: g.Order, Class: g.Class}
	}
	for _, s := range species {
		if s.Code == "" {
			continue
		}
		ix.species[s.Code] = s.Name
	}
	for _, s := range synonyms {
		if s.Genus == "" || s.Species == "" {
			continue
		}
		ix.synonyms[s.Genus+" "+s.Species] = s.Code
	}
	return ix
}

// Empty returns an Index with no entries; every lookup misses.
func Empty() *Index {
	return New(nil, nil, nil)
}

// GenusLookup reports the family/order/class recorded for genus.
func (ix *Index) GenusLookup(genus string) (Ranks, bool) {
	r, ok := ix.genera[genus]
	return r, ok
}

// SynonymLookup resolves a (genus, species) synonym pair to the
// canonical species name it is registered under.
func (ix *Index) SynonymLookup(genus, species string) (string, bool) {
	code, ok := ix.synonyms[genus+" "+species]
	if !ok {
		return "", false
	}
	name, ok := ix.species[code]
	return name, ok
}

// Genera reports how many distinct genera the source carries.
func (ix *Index) Genera() int { return len(ix.genera) }
