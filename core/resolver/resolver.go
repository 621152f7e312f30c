// core/resolver/resolver.go

// Package resolver recovers a canonical lineage from the free-text
// description of a sequence-similarity hit. Descriptions carry the
// organism name at an unpredictable token position, mixed with accession
// numbers and annotation text, so the only reliable anchor is a token
// that exactly matches a known genus. Each lookup tactic is a pure
// strategy; they run in a fixed priority order and the first success
// wins.
package resolver

import (
	"strings"

	"blastlca-core/refindex"
	"blastlca-core/taxa"
	"blastlca-core/taxonomy"
)

// Result is a successful resolution.
type Result struct {
	Genus   string
	Epithet string
	Source  taxa.Source
	Lineage taxa.Lineage
}

type strategy func(tokens []string, taxID string) (Result, bool)

// Resolver tries each reference source in priority order. All inputs
// are read-only; a Resolver is safe for concurrent use.
type Resolver struct {
	chain []strategy
}

// New builds the strategy chain: fishbase genus scan, fishbase synonym
// scan, then the same two against worms, then the taxonomy-id fallback.
// Either index may be Empty and tree may be nil.
func New(fishbase, worms *refindex.Index, tree *taxonomy.Tree) *Resolver {
	r := &Resolver{}
	for _, src := range []struct {
		name taxa.Source
		ix   *refindex.Index
	}{
		{taxa.SourceFishbase, fishbase},
		{taxa.SourceWorms, worms},
	} {
		if src.ix == nil {
			continue
		}
		r.chain = append(r.chain, genusScan(src.name, src.ix))
		r.chain = append(r.chain, synonymScan(src.name, src.ix))
	}
	if tree != nil {
		r.chain = append(r.chain, treeLookup(tree))
	}
	return r
}

// Resolve runs the chain over the hit's tokens and optional taxonomy
// id. A false return means no source knows this organism; the caller
// should route the row to the missing sink.
func (r *Resolver) Resolve(tokens []string, taxID string) (Result, bool) {
	for _, try := range r.chain {
		if res, ok := try(tokens, taxID); ok {
			return res, true
		}
	}
	return Result{}, false
}

// genusScan matches the first token that is a known genus and reads the
// following token as the species epithet. A genus in the last position
// has no epithet after it and is not a match.
func genusScan(name taxa.Source, ix *refindex.Index) strategy {
	return func(tokens []string, _ string) (Result, bool) {
		for i := 0; i < len(tokens)-1; i++ {
			ranks, ok := ix.GenusLookup(tokens[i])
			if !ok {
				continue
			}
			genus, epithet := tokens[i], tokens[i+1]
			return Result{
				Genus:   genus,
				Epithet: epithet,
				Source:  name,
				Lineage: lineageFor(ranks, genus, epithet),
			}, true
		}
		return Result{}, false
	}
}

// synonymScan matches the first adjacent token pair registered as a
// synonym and resolves it to the canonical species, whose genus then
// supplies the lineage.
func synonymScan(name taxa.Source, ix *refindex.Index) strategy {
	return func(tokens []string, _ string) (Result, bool) {
		for i := 0; i < len(tokens)-1; i++ {
			canonical, ok := ix.SynonymLookup(tokens[i], tokens[i+1])
			if !ok {
				continue
			}
			genus, epithet, ok := strings.Cut(canonical, " ")
			if !ok {
				continue
			}
			ranks, ok := ix.GenusLookup(genus)
			if !ok {
				continue
			}
			return Result{
				Genus:   genus,
				Epithet: epithet,
				Source:  name,
				Lineage: lineageFor(ranks, genus, epithet),
			}, true
		}
		return Result{}, false
	}
}

// treeLookup serves organisms absent from both curated sources but
// present in the taxonomy dump, keyed by the hit's taxid.
func treeLookup(tree *taxonomy.Tree) strategy {
	return func(_ []string, taxID string) (Result, bool) {
		if taxID == "" {
			return Result{}, false
		}
		lin, ok := tree.BuildLineage(taxID)
		if !ok {
			return Result{}, false
		}
		epithet := lin.Species
		if after, found := strings.CutPrefix(lin.Species, lin.Genus+" "); found {
			epithet = after
		}
		return Result{
			Genus:   lin.Genus,
			Epithet: epithet,
			Source:  taxa.SourceTaxonomy,
			Lineage: lin,
		}, true
	}
}

func lineageFor(r refindex.Ranks, genus, epithet string) taxa.Lineage {
	return taxa.Lineage{
		Class:   r.Class,
		Order:   r.Order,
		Family:  r.Family,
		Genus:   genus,
		Species: genus + " " + epithet,
	}
}
