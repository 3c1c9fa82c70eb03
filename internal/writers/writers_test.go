package writers

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alienness/internal/alien"
	"alienness/pkg/api"
)

func results() []alien.Result {
	return []alien.Result{
		{Query: "q1", Score: alien.Score{Value: -92.1, Valid: true, BestDonor: 1e-10, BestRecipient: 1e-50, Counts: [4]int{0, 0, 1, 1}}},
		{Query: "q2", Score: alien.Score{BestDonor: 1, BestRecipient: 1}},
	}
}

func run(t *testing.T, format string, header bool) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	in, done := StartScoreWriter(&buf, format, header, 1)
	for _, r := range results() {
		in <- r
	}
	close(in)
	return buf.String(), <-done
}

func TestStartScoreWriter_Text(t *testing.T) {
	out, err := run(t, "text", true)
	require.NoError(t, err)
	assert.Equal(t, "query_id\tAI\nq1\t-92.10\nq2\tNA\n", out)
}

func TestStartScoreWriter_JSONL(t *testing.T) {
	out, err := run(t, "jsonl", false)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first api.ScoreV1
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "q1", first.QueryID)
	require.NotNil(t, first.AI)
	assert.Equal(t, -92.1, *first.AI)
	assert.Equal(t, 1, first.DonorHits)
	assert.Equal(t, 1, first.OtherHits)
}

func TestStartScoreWriter_JSON(t *testing.T) {
	out, err := run(t, "json", false)
	require.NoError(t, err)
	var got []api.ScoreV1
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 2)
}

func TestStartScoreWriter_UnknownFormat(t *testing.T) {
	_, err := run(t, "fasta", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fasta")
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "jsonl", "text"}, Formats())
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(io.EOF))
	assert.False(t, IsBrokenPipe(nil))
}
