// internal/pipeline/pipeline.go
package pipeline

import (
	"bufio"
	"context"
	"io"
	"sort"
	"sync"

	"blastlca-core/blast"
	"blastlca-core/lca"
	"blastlca-core/taxa"

	"go.uber.org/zap"
)

// Config controls the assignment pipeline.
type Config struct {
	Threads     int     // number of consensus workers (>=1)
	Cutoff      float64 // identity window below the best hit
	MinIdentity float64 // hits below this are skipped before resolution
}

// ASVResult is the consensus outcome for one ASV at all five ranks.
type ASVResult struct {
	ASV     string
	ByRank  [len(taxa.Ranks)]lca.Result
	Sources []string // distinct contributing sources, sorted
}

// Stats summarizes one run.
type Stats struct {
	Rows     int // parsed input rows
	Skipped  int // malformed rows dropped with a warning
	Filtered int // rows below MinIdentity
	Missing  int // rows no source could classify
	ASVs     int
}

// hit is one resolved observation belonging to an ASV.
type hit struct {
	percent float64
	lineage taxa.Lineage
	source  taxa.Source
}

type group struct {
	asv     string
	hits    []hit
	sources map[taxa.Source]struct{}
}

// Run reads tabular rows from r, resolves each against res, and emits
// one ASVResult per ASV in first-seen order. Unclassifiable rows go to
// miss verbatim. Consensus per ASV is pure and runs on Threads workers
// over the read-only indices; results are reassembled in input order
// before emit is called, so output order never depends on scheduling.
func Run(
	ctx context.Context,
	cfg Config,
	r io.Reader,
	res Resolver,
	corr blast.Corrections,
	log *zap.Logger,
	emit func(ASVResult) error,
	miss func(asv, line string) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	var (
		stats  Stats
		order  []*group
		byASV  = make(map[string]*group)
		sc     = bufio.NewScanner(r)
		lineNo = 0
	)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

scan:
	for sc.Scan() {
		select {
		case <-ctx.Done():
			break scan
		default:
		}
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}

		row, err := blast.ParseRow(line, corr)
		if err != nil {
			stats.Skipped++
			log.Warn("skipping row", zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		stats.Rows++
		if row.Percent < cfg.MinIdentity {
			stats.Filtered++
			continue
		}

		rr, ok := res.Resolve(row.Tokens, row.TaxID)
		if !ok {
			stats.Missing++
			if err := miss(row.ASV, row.Raw); err != nil {
				return stats, err
			}
			continue
		}

		g := byASV[row.ASV]
		if g == nil {
			g = &group{asv: row.ASV, sources: make(map[taxa.Source]struct{})}
			byASV[row.ASV] = g
			order = append(order, g)
		}
		g.hits = append(g.hits, hit{percent: row.Percent, lineage: rr.Lineage, source: rr.Source})
		g.sources[rr.Source] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	stats.ASVs = len(order)

	// Consensus fan-out. Workers write into an index-addressed slice so
	// the sequential emit below preserves first-seen ASV order.
	results := make([]ASVResult, len(order))
	jobs := make(chan int, cfg.Threads*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = reduce(order[i], cfg.Cutoff)
			}
		}()
	}

feed:
	for i := range order {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	for _, r := range results {
		if err := emit(r); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// reduce computes the five independent rank consensuses for one ASV.
// A rank whose lineage value is empty or Unknown contributes no
// observation at that rank; it is absent data, not a low-quality vote.
func reduce(g *group, cutoff float64) ASVResult {
	out := ASVResult{ASV: g.asv}

	for _, rank := range taxa.Ranks {
		var entries []lca.Entry
		for _, h := range g.hits {
			name := h.lineage.At(rank)
			if name == "" || name == taxa.Unknown {
				continue
			}
			entries = append(entries, lca.Entry{Percent: h.percent, Taxon: name})
		}
		out.ByRank[rank] = lca.Compute(entries, cutoff)
	}

	out.Sources = make([]string, 0, len(g.sources))
	for s := range g.sources {
		out.Sources = append(out.Sources, string(s))
	}
	sort.Strings(out.Sources)
	return out
}
