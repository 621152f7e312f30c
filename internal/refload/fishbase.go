// internal/refload/fishbase.go

// Package refload acquires and parses the external reference tables the
// classifier is built from: the Fishbase-style CSV endpoints, the WoRMS
// species export, the taxonomy dump, and the correction table. All
// loading happens once at startup; failures here are fatal to the run.
package refload

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"blastlca-core/refindex"
	"blastlca/internal/refcache"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultFishbaseBaseURL serves the species, families, and synonyms
// tables as CSV.
const DefaultFishbaseBaseURL = "https://fishbase.ropensci.org/fishbase"

// FishbaseConfig controls acquisition of the Fishbase tables.
type FishbaseConfig struct {
	BaseURL string
	Offline bool // serve from cache only; a miss is fatal
}

// LoadFishbase fetches the three tables concurrently, joins species to
// families on the family code, and builds the source index. The cache
// is consulted before the network and updated after every download.
func LoadFishbase(ctx context.Context, cfg FishbaseConfig, cache *refcache.Store, log *zap.Logger) (*refindex.Index, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultFishbaseBaseURL
	}

	var speciesBody, familiesBody, synonymsBody []byte
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range []struct {
		name string
		dst  *[]byte
	}{
		{"species.csv", &speciesBody},
		{"families.csv", &familiesBody},
		{"synonyms.csv", &synonymsBody},
	} {
		t := t
		g.Go(func() error {
			body, err := fetch(gctx, cfg, cache, base+"/"+t.name, log)
			if err != nil {
				return fmt.Errorf("fishbase %s: %w", t.name, err)
			}
			*t.dst = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix, err := buildFishbaseIndex(speciesBody, familiesBody, synonymsBody)
	if err != nil {
		return nil, err
	}
	log.Info("loaded fishbase reference", zap.Int("genera", ix.Genera()))
	return ix, nil
}

// fetch returns the body for url, preferring the cache.
func fetch(ctx context.Context, cfg FishbaseConfig, cache *refcache.Store, url string, log *zap.Logger) ([]byte, error) {
	if cache != nil {
		body, hit, err := cache.Get(ctx, url)
		if err != nil {
			return nil, err
		}
		if hit {
			log.Debug("cache hit", zap.String("url", url))
			return body, nil
		}
	}
	if cfg.Offline {
		return nil, fmt.Errorf("offline and %s not cached", url)
	}

	log.Info("downloading", zap.String("url", url))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		if err := cache.Put(ctx, url, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// buildFishbaseIndex is the pure transform from raw CSV bodies to the
// source index. Species rows carry (SpecCode, Genus, Species, FamCode);
// families carry (FamCode, Family, Order, Class); synonyms carry
// (SynGenus, SynSpecies, SpecCode).
func buildFishbaseIndex(speciesBody, familiesBody, synonymsBody []byte) (*refindex.Index, error) {
	famRows, err := readCSV("families", familiesBody, "FamCode", "Family", "Order", "Class")
	if err != nil {
		return nil, err
	}
	famRanks := make(map[string]refindex.Ranks, len(famRows))
	for _, f := range famRows {
		famRanks[f[0]] = refindex.Ranks{Family: f[1], Order: f[2], Class: f[3]}
	}

	specRows, err := readCSV("species", speciesBody, "SpecCode", "Genus", "Species", "FamCode")
	if err != nil {
		return nil, err
	}
	genera := make([]refindex.GenusRow, 0, len(specRows))
	species := make([]refindex.SpeciesRow, 0, len(specRows))
	for _, s := range specRows {
		code, genus, epithet, famCode := s[0], s[1], s[2], s[3]
		r := famRanks[famCode]
		genera = append(genera, refindex.GenusRow{
			Genus: genus, Family: r.Family, Order: r.Order, Class: r.Class,
		})
		species = append(species, refindex.SpeciesRow{Code: code, Name: genus + " " + epithet})
	}

	synRows, err := readCSV("synonyms", synonymsBody, "SynGenus", "SynSpecies", "SpecCode")
	if err != nil {
		return nil, err
	}
	synonyms := make([]refindex.SynonymRow, 0, len(synRows))
	for _, s := range synRows {
		synonyms = append(synonyms, refindex.SynonymRow{Genus: s[0], Species: s[1], Code: s[2]})
	}

	return refindex.New(genera, synonyms, species), nil
}

// readCSV extracts the named columns, in order, from a headered CSV
// body. Missing columns are a fatal format error.
func readCSV(table string, body []byte, cols ...string) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", table, err)
	}
	idx := make([]int, len(cols))
	for i, want := range cols {
		idx[i] = -1
		for j, got := range header {
			if got == want {
				idx[i] = j
				break
			}
		}
		if idx[i] == -1 {
			return nil, fmt.Errorf("%s: missing column %q", table, want)
		}
	}

	var out [][]string
	ln := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		ln++
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", table, ln, err)
		}
		row := make([]string, len(idx))
		skip := false
		for i, j := range idx {
			if j >= len(rec) {
				skip = true
				break
			}
			row[i] = rec[j]
		}
		if skip {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
