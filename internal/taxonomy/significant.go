// internal/taxonomy/significant.go
package taxonomy

import (
	"context"
	"io"
	"strings"

	"alienness/internal/errors"
	"alienness/internal/tsv"
)

// IDSet is the allow-list of taxa whose hits count as evidence.
type IDSet struct {
	ids map[TaxID]struct{}
}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...TaxID) *IDSet {
	s := &IDSet{ids: make(map[TaxID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *IDSet) Contains(id TaxID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *IDSet) Len() int { return len(s.ids) }

// ParseSignificant reads one taxon id per line. Blank lines are skipped.
func ParseSignificant(ctx context.Context, r io.Reader, name string) (*IDSet, error) {
	s := NewIDSet()
	if err := tsv.ForEachLine(ctx, r, s.lineFunc(name)); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSignificant opens path (plain or gzip) and parses it with ParseSignificant.
func LoadSignificant(ctx context.Context, path string) (*IDSet, error) {
	s := NewIDSet()
	if err := tsv.ForEachLinePath(ctx, path, s.lineFunc(path)); err != nil {
		return nil, errors.Wrap(err, "load significant ids")
	}
	return s, nil
}

func (s *IDSet) lineFunc(name string) tsv.LineFunc {
	return func(ln int, line string) error {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		id, err := ParseTaxID(line)
		if err != nil {
			return errors.Parsef(name, ln, "bad significant taxid %q", line)
		}
		s.ids[id] = struct{}{}
		return nil
	}
}
