// core/lca/lca.go

// Package lca reduces a set of percent-identity-weighted taxon
// observations at one rank into a single consensus assignment.
package lca

import "sort"

// Assignment sentinels. Both are expected outcomes, never errors.
const (
	Dropped = "dropped" // multiple taxa survive the cutoff window
	NoHits  = "no_hits" // the observation set was empty
)

// Entry is one (percent identity, taxon name) observation.
type Entry struct {
	Percent float64
	Taxon   string
}

// Result is the consensus at one rank.
type Result struct {
	Percent    float64  // mean identity of included observations
	Assignment string   // single taxon, Dropped, or NoHits
	Included   []string // distinct included taxa, sorted
}

// Compute applies the cutoff-window rule: every observation whose
// identity is >= (best - cutoff) is included, the boundary itself
// counting. Duplicate taxon names each contribute their score to the
// mean; the included set holds distinct names only. Exactly one
// surviving taxon becomes the assignment, more than one is Dropped.
func Compute(entries []Entry, cutoff float64) Result {
	if len(entries) == 0 {
		return Result{Percent: 0.0, Assignment: NoHits}
	}

	top := entries[0].Percent
	for _, e := range entries[1:] {
		if e.Percent > top {
			top = e.Percent
		}
	}
	threshold := top - cutoff

	var (
		sum   float64
		n     int
		seen  = make(map[string]struct{})
		taxaS []string
	)
	for _, e := range entries {
		if e.Percent < threshold {
			continue
		}
		sum += e.Percent
		n++
		if _, dup := seen[e.Taxon]; dup {
			continue
		}
		seen[e.Taxon] = struct{}{}
		taxaS = append(taxaS, e.Taxon)
	}
	sort.Strings(taxaS)

	res := Result{
		Percent:  sum / float64(n),
		Included: taxaS,
	}
	if len(taxaS) == 1 {
		res.Assignment = taxaS[0]
	} else {
		res.Assignment = Dropped
	}
	return res
}
