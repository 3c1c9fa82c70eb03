package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zap.InfoLevel, Options{}.Level())
	assert.Equal(t, zap.DebugLevel, Options{Verbose: true}.Level())
	assert.Equal(t, zap.WarnLevel, Options{Quiet: true}.Level())
	assert.Equal(t, zap.WarnLevel, Options{Quiet: true, Verbose: true}.Level())
}

func TestNew_ConsoleRespectsQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Quiet: true, Output: &buf}).Sugar()
	l.Infow("loaded taxonomy", "nodes", 3)
	l.Warnw("skipped rows", "count", 2)
	_ = l.Sync()

	out := buf.String()
	assert.NotContains(t, out, "loaded taxonomy")
	assert.Contains(t, out, "skipped rows")
	assert.Contains(t, out, "WARN")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{JSON: true, Output: &buf}).Sugar()
	l.Infow("scored queries", "queries", 5)
	_ = l.Sync()

	line := strings.TrimSpace(buf.String())
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "scored queries", rec["msg"])
	assert.Equal(t, float64(5), rec["queries"])
}

func TestInitialize_ReplacesGlobal(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	var buf bytes.Buffer
	require.NoError(t, Initialize(Options{Verbose: true, Output: &buf}))
	Logger.Debugw("lineage", "taxid", 9606)
	Sync()
	assert.Contains(t, buf.String(), "lineage")
}
