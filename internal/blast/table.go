// internal/blast/table.go
package blast

import (
	"context"
	"io"
	"math"
	"strconv"

	"alienness/internal/errors"
	"alienness/internal/taxonomy"
	"alienness/internal/tsv"
)

// Column layout of a results row (BLAST outfmt 6 plus a trailing taxid).
const (
	NumColumns  = 13
	ColQuery    = 0
	ColEValue   = 10
	ColBitScore = 11
	ColTaxID    = 12

	// MissingTaxID marks a row whose lineage assignment failed upstream.
	MissingTaxID = "NA"
)

// Hit is one accepted results row. Values are fixed at parse time.
type Hit struct {
	EValue   float64
	BitScore float64
	TaxID    taxonomy.TaxID
}

// Table groups hits by query id. Queries() preserves first-encounter order.
type Table struct {
	order []string
	hits  map[string][]Hit
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{hits: make(map[string][]Hit)}
}

// Add appends h to query's hit list.
func (t *Table) Add(query string, h Hit) {
	if _, ok := t.hits[query]; !ok {
		t.order = append(t.order, query)
	}
	t.hits[query] = append(t.hits[query], h)
}

// Queries returns query ids in the order they were first seen.
func (t *Table) Queries() []string { return t.order }

// Hits returns the hits recorded for query, in arrival order.
func (t *Table) Hits(query string) []Hit { return t.hits[query] }

// Len returns the number of distinct queries.
func (t *Table) Len() int { return len(t.order) }

// Stats counts rows seen while parsing.
type Stats struct {
	Rows        int // non-empty lines
	Accepted    int
	BadShape    int // column count != NumColumns
	MissingTaxa int // last column "NA"
}

// Skipped is the number of rows left out of the table.
func (s Stats) Skipped() int { return s.BadShape + s.MissingTaxa }

// Merge adds o into s.
func (s *Stats) Merge(o Stats) {
	s.Rows += o.Rows
	s.Accepted += o.Accepted
	s.BadShape += o.BadShape
	s.MissingTaxa += o.MissingTaxa
}

// ParseTable reads results rows from r into t. Rows with the wrong column
// count or an "NA" taxid are skipped and counted. A numeric field that does
// not parse on an otherwise well-shaped row is a fatal parse error.
func ParseTable(ctx context.Context, r io.Reader, name string, t *Table) (Stats, error) {
	var st Stats
	err := tsv.ForEachLine(ctx, r, rowFunc(name, t, &st))
	return st, err
}

// LoadTable parses every path into one table, in argument order.
func LoadTable(ctx context.Context, paths ...string) (*Table, Stats, error) {
	t := NewTable()
	var total Stats
	for _, p := range paths {
		var st Stats
		if err := tsv.ForEachLinePath(ctx, p, rowFunc(p, t, &st)); err != nil {
			return nil, total, errors.Wrap(err, "load results")
		}
		total.Merge(st)
	}
	return t, total, nil
}

func rowFunc(name string, t *Table, st *Stats) tsv.LineFunc {
	return func(ln int, line string) error {
		if line == "" {
			return nil
		}
		st.Rows++
		f := tsv.Split(line)
		if len(f) != NumColumns {
			st.BadShape++
			return nil
		}
		if f[ColTaxID] == MissingTaxID {
			st.MissingTaxa++
			return nil
		}
		h, err := parseHit(f)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "%s:%d", name, ln), errors.ErrParse)
		}
		t.Add(f[ColQuery], h)
		st.Accepted++
		return nil
	}
}

func parseHit(f []string) (Hit, error) {
	ev, err := strconv.ParseFloat(f[ColEValue], 64)
	if err != nil {
		return Hit{}, errors.Newf("bad e-value %q", f[ColEValue])
	}
	if ev < 0 || math.IsNaN(ev) {
		return Hit{}, errors.Newf("e-value out of range %q", f[ColEValue])
	}
	bs, err := strconv.ParseFloat(f[ColBitScore], 64)
	if err != nil {
		return Hit{}, errors.Newf("bad bit-score %q", f[ColBitScore])
	}
	id, err := taxonomy.ParseTaxID(f[ColTaxID])
	if err != nil {
		return Hit{}, errors.Newf("bad taxid %q", f[ColTaxID])
	}
	return Hit{EValue: ev, BitScore: bs, TaxID: id}, nil
}
