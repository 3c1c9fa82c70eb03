// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"alienness/internal/config"
	aerrors "alienness/internal/errors"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "--blast-out", "hits.tsv.gz")
	if o.DonorTaxID != 33208 || o.ExcludedTaxID != 10190 {
		t.Errorf("bad default taxids %+v", o)
	}
	if o.Output != "alienness_results.tsv" || o.Format != "text" || o.Threads != 1 {
		t.Errorf("bad output defaults %+v", o)
	}
	if len(o.ResultFiles) != 1 || o.ResultFiles[0] != "hits.tsv.gz" {
		t.Errorf("bad results %v", o.ResultFiles)
	}
}

func TestAliasesAndPositionals(t *testing.T) {
	o := mustParse(t,
		"-b", "a.tsv",
		"--group-taxid", "6231",
		"-o", "-",
		"b.tsv",
		"-t", "4",
	)
	if o.ExcludedTaxID != 6231 || o.Output != "-" || o.Threads != 4 {
		t.Errorf("bad alias parse %+v", o)
	}
	if len(o.ResultFiles) != 2 || o.ResultFiles[1] != "b.tsv" {
		t.Errorf("bad results %v", o.ResultFiles)
	}
	if !o.IsSet("excluded-taxid") || !o.IsSet("output") || !o.IsSet("threads") {
		t.Errorf("aliases should mark canonical names as set: %v", o.set)
	}
	if o.IsSet("donor-taxid") {
		t.Errorf("donor-taxid was not given")
	}
}

func TestGlobPositionals(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"x1.tsv", "x2.tsv"} {
		_ = os.WriteFile(filepath.Join(dir, n), nil, 0o644)
	}
	o := mustParse(t, filepath.Join(dir, "x*.tsv"))
	if len(o.ResultFiles) != 2 {
		t.Fatalf("glob not expanded: %v", o.ResultFiles)
	}
}

func TestErrors(t *testing.T) {
	cases := map[string][]string{
		"no results":     {"--donor-taxid", "1"},
		"two stdin":      {"-b", "-", "-b", "-"},
		"neg threads":    {"-b", "x", "--threads", "-1"},
		"neg taxid":      {"-b", "x", "--donor-taxid", "-3"},
		"bad format":     {"-b", "x", "--format", "xml"},
		"empty output":   {"-b", "x", "--output", ""},
		"unmatched glob": {"/nonexistent/dir/*.tsv"},
	}
	for name, args := range cases {
		_, err := ParseArgs(newFS(), args)
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !aerrors.IsUsageError(err) {
			t.Errorf("%s: want usage error, got %v", name, err)
		}
	}
}

func TestHelpAndVersion(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want ErrHelp, got %v", err)
	}
	o, err := ParseArgs(newFS(), []string{"--version"})
	if err != nil || !o.Version {
		t.Fatalf("version: %+v %v", o, err)
	}
}

func TestApply_OnlyExplicitFlags(t *testing.T) {
	cfg := config.Config{
		Taxonomy: config.TaxonomyConfig{Nodes: "/cfg/nodes.gz", Significant: "/cfg/sig.gz"},
		Scoring:  config.ScoringConfig{DonorTaxID: 2759, ExcludedTaxID: 1, Threads: 8},
		Output:   config.OutputConfig{Path: "cfg.tsv", Format: "jsonl"},
	}
	o := mustParse(t, "-b", "x", "--excluded-taxid", "10190", "--nodes", "n.gz")
	o.Apply(&cfg)

	if cfg.Taxonomy.Nodes != "n.gz" || cfg.Taxonomy.Significant != "/cfg/sig.gz" {
		t.Errorf("taxonomy overlay wrong: %+v", cfg.Taxonomy)
	}
	if cfg.Scoring.DonorTaxID != 2759 || cfg.Scoring.ExcludedTaxID != 10190 || cfg.Scoring.Threads != 8 {
		t.Errorf("scoring overlay wrong: %+v", cfg.Scoring)
	}
	if cfg.Output.Path != "cfg.tsv" || cfg.Output.Format != "jsonl" {
		t.Errorf("output overlay wrong: %+v", cfg.Output)
	}
}
