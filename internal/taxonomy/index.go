// internal/taxonomy/index.go
package taxonomy

import (
	"context"
	"io"
	"strconv"
	"strings"

	"alienness/internal/errors"
	"alienness/internal/tsv"
)

// TaxID identifies a node in the taxonomy.
type TaxID int64

// Index maps each taxon to its parent. A taxon that is its own parent is a
// root. The index is read-only once built and safe for concurrent readers.
type Index struct {
	parent map[TaxID]TaxID
}

// NewIndex wraps an in-memory parent map. The map is copied.
func NewIndex(parents map[TaxID]TaxID) *Index {
	m := make(map[TaxID]TaxID, len(parents))
	for k, v := range parents {
		m[k] = v
	}
	return &Index{parent: m}
}

// Len returns the number of taxa with a recorded parent.
func (ix *Index) Len() int { return len(ix.parent) }

// ParentOf returns the recorded parent of id.
func (ix *Index) ParentOf(id TaxID) (TaxID, bool) {
	p, ok := ix.parent[id]
	return p, ok
}

// IsDescendantOf reports whether ancestor is id itself or lies on id's parent
// chain. Ascent stops at a self-loop root or at a taxon with no recorded
// parent. The walk is capped at Len()+1 steps so a malformed cycle
// (a -> b -> a) ends with false instead of spinning.
func (ix *Index) IsDescendantOf(id, ancestor TaxID) bool {
	cur := id
	for steps := 0; steps <= len(ix.parent); steps++ {
		if cur == ancestor {
			return true
		}
		p, ok := ix.parent[cur]
		if !ok || p == cur {
			return false
		}
		cur = p
	}
	return false
}

// Lineage returns the ascent path starting at id and ending at the root or at
// the first taxon without a recorded parent. Same cap as IsDescendantOf.
func (ix *Index) Lineage(id TaxID) []TaxID {
	path := []TaxID{id}
	cur := id
	for steps := 0; steps < len(ix.parent); steps++ {
		p, ok := ix.parent[cur]
		if !ok || p == cur {
			break
		}
		path = append(path, p)
		cur = p
	}
	return path
}

// ParseNodes reads "taxid<TAB>parent[<TAB>...]" lines. Lines with fewer than
// two columns are skipped; a non-integer in either used column is fatal.
// name labels errors (usually the file path).
func ParseNodes(ctx context.Context, r io.Reader, name string) (*Index, error) {
	ix := &Index{parent: make(map[TaxID]TaxID, 1<<16)}
	err := tsv.ForEachLine(ctx, r, func(ln int, line string) error {
		return ix.addLine(name, ln, line)
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// LoadNodes opens path (plain or gzip) and parses it with ParseNodes.
func LoadNodes(ctx context.Context, path string) (*Index, error) {
	ix := &Index{parent: make(map[TaxID]TaxID, 1<<16)}
	err := tsv.ForEachLinePath(ctx, path, func(ln int, line string) error {
		return ix.addLine(path, ln, line)
	})
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "load taxonomy nodes"),
			"point --nodes (or taxonomy.nodes in the config) at a taxid<TAB>parent file",
		)
	}
	return ix, nil
}

func (ix *Index) addLine(name string, ln int, line string) error {
	f := tsv.Split(strings.TrimSpace(line))
	if len(f) < 2 {
		return nil
	}
	child, err := ParseTaxID(f[0])
	if err != nil {
		return errors.Parsef(name, ln, "bad taxid %q", f[0])
	}
	parent, err := ParseTaxID(f[1])
	if err != nil {
		return errors.Parsef(name, ln, "bad parent taxid %q", f[1])
	}
	ix.parent[child] = parent
	return nil
}

// ParseTaxID parses a non-negative decimal taxon id.
func ParseTaxID(s string) (TaxID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.Newf("negative taxid %d", v)
	}
	return TaxID(v), nil
}
