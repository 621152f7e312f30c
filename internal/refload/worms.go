// internal/refload/worms.go
package refload

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"blastlca-core/refindex"

	"go.uber.org/zap"
)

// wormsFieldCount is the column count of the WoRMS species export:
// Species, Genus, Kingdom, Phylum, Class, Order, Family, plus three
// trailing bookkeeping columns we ignore.
const wormsFieldCount = 7

// LoadWorms reads the headerless, tab-separated (optionally gzipped)
// WoRMS species export. A missing file is not fatal: the source just
// serves nothing and resolution falls through to the taxonomy tree.
func LoadWorms(path string, log *zap.Logger) (*refindex.Index, error) {
	if path == "" {
		return refindex.Empty(), nil
	}
	rc, err := Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("worms file not found, continuing without it", zap.String("path", path))
			return refindex.Empty(), nil
		}
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var genera []refindex.GenusRow
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		f := strings.Split(sc.Text(), "\t")
		if len(f) < wormsFieldCount {
			continue
		}
		genera = append(genera, refindex.GenusRow{
			Genus:  f[1],
			Class:  f[4],
			Order:  f[5],
			Family: f[6],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	ix := refindex.New(genera, nil, nil)
	log.Info("loaded worms reference", zap.Int("genera", ix.Genera()))
	return ix, nil
}
