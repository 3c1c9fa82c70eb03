package blast

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alienness/internal/errors"
	"alienness/internal/taxonomy"
)

// row builds a 13-column results line.
func row(query, evalue, bits, taxid string) string {
	cols := []string{query, "subj", "98.5", "120", "2", "0", "1", "120", "5", "124", evalue, bits, taxid}
	return strings.Join(cols, "\t")
}

func parse(t *testing.T, lines ...string) (*Table, Stats) {
	t.Helper()
	tb := NewTable()
	st, err := ParseTable(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), "hits.tsv", tb)
	require.NoError(t, err)
	return tb, st
}

func TestParseTable_AcceptsWellShapedRow(t *testing.T) {
	tb, st := parse(t, row("q1", "1e-30", "250.5", "9606"))
	require.Equal(t, 1, tb.Len())
	assert.Equal(t, []Hit{{EValue: 1e-30, BitScore: 250.5, TaxID: 9606}}, tb.Hits("q1"))
	assert.Equal(t, 1, st.Accepted)
	assert.Equal(t, 0, st.Skipped())
}

func TestParseTable_RejectsShapeAndNA(t *testing.T) {
	twelve := strings.Join(strings.Split(row("q1", "1e-5", "50", "9606"), "\t")[:12], "\t")
	fourteen := row("q2", "1e-5", "50", "9606") + "\textra"
	tb, st := parse(t,
		twelve,
		fourteen,
		row("q3", "1e-5", "50", "NA"),
		row("q4", "0", "80", "10090"),
	)
	assert.Equal(t, []string{"q4"}, tb.Queries())
	assert.Equal(t, 2, st.BadShape)
	assert.Equal(t, 1, st.MissingTaxa)
	assert.Equal(t, 3, st.Skipped())
	assert.Equal(t, 4, st.Rows)
}

func TestParseTable_GroupsInFirstSeenOrder(t *testing.T) {
	tb, _ := parse(t,
		row("b", "1e-3", "10", "1"),
		row("a", "1e-4", "11", "2"),
		row("b", "1e-5", "12", "3"),
	)
	assert.Equal(t, []string{"b", "a"}, tb.Queries())
	hits := tb.Hits("b")
	require.Len(t, hits, 2)
	assert.Equal(t, taxonomy.TaxID(1), hits[0].TaxID)
	assert.Equal(t, taxonomy.TaxID(3), hits[1].TaxID)
}

func TestParseTable_NumericErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"evalue", row("q", "abc", "50", "9606")},
		{"negative evalue", row("q", "-1e-5", "50", "9606")},
		{"nan evalue", row("q", "NaN", "50", "9606")},
		{"bitscore", row("q", "1e-5", "x", "9606")},
		{"taxid", row("q", "1e-5", "50", "96o6")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTable(context.Background(), strings.NewReader(tc.line+"\n"), "hits.tsv", NewTable())
			require.Error(t, err)
			assert.True(t, errors.IsParseError(err))
			assert.Contains(t, err.Error(), "hits.tsv:1")
		})
	}
}

func TestLoadTable_MergesFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tsv")
	b := filepath.Join(dir, "b.tsv")
	require.NoError(t, os.WriteFile(a, []byte(row("q1", "1e-5", "50", "1")+"\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(row("q2", "1e-6", "60", "2")+"\n"+row("q1", "1e-7", "70", "3")+"\n"), 0o644))

	tb, st, err := LoadTable(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, tb.Queries())
	assert.Len(t, tb.Hits("q1"), 2)
	assert.Equal(t, 3, st.Accepted)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, _, err := LoadTable(context.Background(), filepath.Join(t.TempDir(), "nope.tsv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
