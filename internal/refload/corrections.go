// internal/refload/corrections.go
package refload

import (
	"bufio"
	"fmt"
	"strings"

	"blastlca-core/blast"
)

// LoadCorrections reads a two-column TSV (misspelling, replacement) and
// appends it to the built-in defaults. An empty path yields just the
// defaults.
func LoadCorrections(path string) (blast.Corrections, error) {
	corr := blast.DefaultCorrections()
	if path == "" {
		return corr, nil
	}
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	sc := bufio.NewScanner(rc)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		from, to, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s:%d bad field count", path, ln)
		}
		corr = append(corr, blast.Correction{From: from, To: strings.TrimSpace(to)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return corr, nil
}
