// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"
	"strings"

	"alienness/internal/cliutil"
	"alienness/internal/config"
	"alienness/internal/errors"
	"alienness/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	ResultFiles []string
	Nodes       string
	Significant string
	ConfigFile  string

	// Scoring
	DonorTaxID    int64
	ExcludedTaxID int64
	Threads       int

	// Output
	Output string
	Format string
	Header bool

	// Logging
	Quiet   bool
	Verbose bool
	LogJSON bool

	Version bool

	set map[string]bool // flags given on the command line, by canonical name
}

// aliases maps short or legacy flag names to their canonical name.
var aliases = map[string]string{
	"b":           "blast-out",
	"group-taxid": "excluded-taxid",
	"o":           "output",
	"t":           "threads",
	"q":           "quiet",
	"v":           "version",
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: Alienness Index from BLAST tabular hits

Version: %s

Usage of %s:
  %s [flags] --blast-out hits.tsv.gz
  %s [flags] hits_*.tsv.gz

`, name, version.Version, name, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Positional arguments (globs allowed) are extra results files.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	results := &sliceValue{dst: &opt.ResultFiles}
	fs.Var(results, "blast-out", "BLAST tabular results file(s), 13 columns, gzip ok (repeatable or '-')")
	fs.Var(results, "b", "alias of --blast-out")
	fs.StringVar(&opt.Nodes, "nodes", config.DefaultNodes, "taxonomy nodes file (taxid<TAB>parent)")
	fs.StringVar(&opt.Significant, "significant", config.DefaultSignificant, "significant taxids file (one per line)")
	fs.StringVar(&opt.ConfigFile, "config", "", "TOML config file")

	// Scoring
	fs.Int64Var(&opt.DonorTaxID, "donor-taxid", 33208, "donor lineage taxid (default Metazoa) [33208]")
	fs.Int64Var(&opt.ExcludedTaxID, "excluded-taxid", 10190, "excluded lineage taxid (default Rotifera) [10190]")
	fs.Int64Var(&opt.ExcludedTaxID, "group-taxid", 10190, "alias of --excluded-taxid")
	fs.IntVar(&opt.Threads, "threads", 1, "scoring workers (0 = all CPUs) [1]")
	fs.IntVar(&opt.Threads, "t", 1, "alias of --threads")

	// Output
	fs.StringVar(&opt.Output, "output", config.DefaultOutput, "output file ('-' = stdout)")
	fs.StringVar(&opt.Output, "o", config.DefaultOutput, "alias of --output")
	fs.StringVar(&opt.Format, "format", "text", "output format: text | json | jsonl [text]")
	fs.BoolVar(&opt.Header, "header", false, "write a header line in text output [false]")

	// Logging
	fs.BoolVar(&opt.Quiet, "quiet", false, "warnings and errors only [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging [false]")
	fs.BoolVar(&opt.LogJSON, "log-json", false, "structured JSON logs on stderr [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	opt.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if canon, ok := aliases[name]; ok {
			name = canon
		}
		opt.set[name] = true
	})
	if opt.Version {
		return opt, nil
	}

	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return opt, errors.Mark(err, errors.ErrUsage)
		}
		opt.ResultFiles = append(opt.ResultFiles, exp...)
	}
	return opt, Validate(&opt)
}

// Validate applies CLI invariants.
func Validate(o *Options) error {
	if len(o.ResultFiles) == 0 {
		return usage("at least one --blast-out results file is required")
	}
	stdin := 0
	for _, f := range o.ResultFiles {
		if f == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return usage("'-' (stdin) may be given only once")
	}
	if o.Threads < 0 {
		return usage("--threads must be ≥ 0")
	}
	if o.DonorTaxID < 0 || o.ExcludedTaxID < 0 {
		return usage("taxids must be ≥ 0")
	}
	switch o.Format {
	case "text", "json", "jsonl":
	default:
		return usage("invalid --format %q", o.Format)
	}
	if o.Output == "" {
		return usage("--output must not be empty")
	}
	return nil
}

// IsSet reports whether the canonical flag name was given explicitly.
func (o Options) IsSet(name string) bool { return o.set[name] }

// Apply overlays explicitly given flags onto cfg; unset flags leave the
// config file / environment / default value in place.
func (o Options) Apply(cfg *config.Config) {
	if o.IsSet("nodes") {
		cfg.Taxonomy.Nodes = o.Nodes
	}
	if o.IsSet("significant") {
		cfg.Taxonomy.Significant = o.Significant
	}
	if o.IsSet("donor-taxid") {
		cfg.Scoring.DonorTaxID = o.DonorTaxID
	}
	if o.IsSet("excluded-taxid") {
		cfg.Scoring.ExcludedTaxID = o.ExcludedTaxID
	}
	if o.IsSet("threads") {
		cfg.Scoring.Threads = o.Threads
	}
	if o.IsSet("output") {
		cfg.Output.Path = o.Output
	}
	if o.IsSet("format") {
		cfg.Output.Format = o.Format
	}
	if o.IsSet("header") {
		cfg.Output.Header = o.Header
	}
	if o.IsSet("quiet") {
		cfg.Log.Quiet = o.Quiet
	}
	if o.IsSet("verbose") {
		cfg.Log.Verbose = o.Verbose
	}
	if o.IsSet("log-json") {
		cfg.Log.JSON = o.LogJSON
	}
}

func usage(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), errors.ErrUsage)
}

// sliceValue appends each value to a *[]string (for --blast-out/-b).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}
