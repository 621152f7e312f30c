// core/taxonomy/tree.go
package taxonomy

import (
	"sync"

	"blastlca-core/taxa"
)

// rootID is the conventional self-parenting root of a taxonomy dump.
const rootID = "1"

// notApplicable is the sentinel BLAST emits when a hit carries no taxid.
const notApplicable = "N/A"

// Tree answers lineage queries against a parent-pointer taxonomy built
// from node and name dump tables. It is read-only after construction;
// the memo cache is append-only and safe for concurrent queries.
type Tree struct {
	parent map[string]string
	rank   map[string]string
	name   map[string]string

	mu   sync.RWMutex
	memo map[string]memoEntry
}

type memoEntry struct {
	lin taxa.Lineage
	ok  bool
}

// BuildLineage walks from id toward the root, filling each of the five
// rank slots the first time its rank is seen. Traversal stops at the
// root, at a missing parent, or on revisiting a node, so cyclic or
// malformed dumps terminate. It reports false for an empty id, the
// "N/A" sentinel, or an id absent from the node table; that is not an
// error, just a miss the caller can fall through on.
func (t *Tree) BuildLineage(id string) (taxa.Lineage, bool) {
	if id == "" || id == notApplicable {
		return taxa.Lineage{}, false
	}

	t.mu.RLock()
	if e, hit := t.memo[id]; hit {
		t.mu.RUnlock()
		return e.lin, e.ok
	}
	t.mu.RUnlock()

	lin, ok := t.walk(id)

	t.mu.Lock()
	t.memo[id] = memoEntry{lin: lin, ok: ok}
	t.mu.Unlock()
	return lin, ok
}

func (t *Tree) walk(id string) (taxa.Lineage, bool) {
	if _, known := t.parent[id]; !known {
		return taxa.Lineage{}, false
	}

	var lin taxa.Lineage
	visited := make(map[string]struct{})
	cur := id
	for {
		if _, seen := visited[cur]; seen {
			break
		}
		visited[cur] = struct{}{}

		nm := t.name[cur]
		// First occurrence wins; a filled slot is never overwritten.
		switch t.rank[cur] {
		case "class":
			if lin.Class == "" {
				lin.Class = nm
			}
		case "order":
			if lin.Order == "" {
				lin.Order = nm
			}
		case "family":
			if lin.Family == "" {
				lin.Family = nm
			}
		case "genus":
			if lin.Genus == "" {
				lin.Genus = nm
			}
		case "species":
			if lin.Species == "" {
				lin.Species = nm
			}
		}

		next, ok := t.parent[cur]
		if !ok || next == cur || next == rootID {
			break
		}
		cur = next
	}

	if lin.Class == "" {
		lin.Class = taxa.Unknown
	}
	if lin.Order == "" {
		lin.Order = taxa.Unknown
	}
	if lin.Family == "" {
		lin.Family = taxa.Unknown
	}
	if lin.Genus == "" {
		lin.Genus = taxa.Unknown
	}
	if lin.Species == "" {
		// No species rank on the path: the queried node's own name is
		// the most specific label available.
		if own := t.name[id]; own != "" {
			lin.Species = own
		} else {
			lin.Species = taxa.Unknown
		}
	}
	return lin, true
}

// Len reports the number of nodes in the parent table.
func (t *Tree) Len() int { return len(t.parent) }
