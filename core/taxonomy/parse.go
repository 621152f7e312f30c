// core/taxonomy/parse.go
package taxonomy

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// scientificName is the only name class loaded; other classes
// (synonyms, common names, authorities) are ignored.
const scientificName = "scientific name"

// Parse builds a Tree from a node table (id, parent, rank, ...) and a
// name table (id, name, ..., class). Both use the dump format: fields
// separated by "\t|\t" with a trailing "\t|" artifact per line.
func Parse(nodes, names io.Reader) (*Tree, error) {
	t := &Tree{
		parent: make(map[string]string),
		rank:   make(map[string]string),
		name:   make(map[string]string),
		memo:   make(map[string]memoEntry),
	}

	sc := newDumpScanner(nodes)
	ln := 0
	for sc.Scan() {
		ln++
		f := splitDumpLine(sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) < 3 {
			return nil, fmt.Errorf("nodes:%d bad field count", ln)
		}
		t.parent[f[0]] = f[1]
		t.rank[f[0]] = f[2]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("nodes: %w", err)
	}

	sc = newDumpScanner(names)
	ln = 0
	for sc.Scan() {
		ln++
		f := splitDumpLine(sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) < 3 {
			return nil, fmt.Errorf("names:%d bad field count", ln)
		}
		// Class is the last field whether the dump carries the optional
		// unique-name column or not.
		if f[len(f)-1] != scientificName {
			continue
		}
		if _, dup := t.name[f[0]]; dup {
			continue
		}
		t.name[f[0]] = f[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("names: %w", err)
	}
	return t, nil
}

// newDumpScanner sizes the scanner for dump-scale lines.
func newDumpScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return sc
}

// splitDumpLine tokenizes one "a\t|\tb\t|\tc\t|" dump line, trimming the
// trailing delimiter artifact and surrounding whitespace per field.
func splitDumpLine(line string) []string {
	line = strings.TrimRight(line, "\t|")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, "\t|\t")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
