// internal/refload/taxdump.go
package refload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"blastlca-core/taxonomy"

	"go.uber.org/zap"
)

// LoadTaxdump builds the taxonomy tree from nodes.dmp and names.dmp in
// dir (plain or gzipped). An empty dir disables the taxonomy fallback;
// a non-empty dir with missing or unparsable files is fatal, since the
// run must not proceed with a partial index.
func LoadTaxdump(dir string, log *zap.Logger) (*taxonomy.Tree, error) {
	if dir == "" {
		return nil, nil
	}

	nodes, err := openDumpFile(dir, "nodes.dmp")
	if err != nil {
		return nil, err
	}
	defer func() { _ = nodes.Close() }()
	names, err := openDumpFile(dir, "names.dmp")
	if err != nil {
		return nil, err
	}
	defer func() { _ = names.Close() }()

	tree, err := taxonomy.Parse(nodes, names)
	if err != nil {
		return nil, fmt.Errorf("taxdump %s: %w", dir, err)
	}
	log.Info("loaded taxonomy dump", zap.Int("nodes", tree.Len()))
	return tree, nil
}

// openDumpFile tries name, then name.gz.
func openDumpFile(dir, name string) (io.ReadCloser, error) {
	plain := filepath.Join(dir, name)
	if _, statErr := os.Stat(plain); statErr == nil {
		return Open(plain)
	}
	gz := plain + ".gz"
	if _, statErr := os.Stat(gz); statErr == nil {
		return Open(gz)
	}
	return nil, fmt.Errorf("taxdump: %s not found in %s", name, dir)
}
