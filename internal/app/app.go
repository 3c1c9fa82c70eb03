// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"alienness/internal/alien"
	"alienness/internal/blast"
	"alienness/internal/cli"
	"alienness/internal/config"
	"alienness/internal/errors"
	"alienness/internal/logger"
	"alienness/internal/pipeline"
	"alienness/internal/runutil"
	"alienness/internal/taxonomy"
	"alienness/internal/version"
	"alienness/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2 // bad flags, bad config, malformed input
	ExitIO        = 3 // unreadable input, unwritable output
	ExitCancelled = 130
)

// RunContext is the whole program behind cmd/alienness. It never calls
// os.Exit; the returned code is for the caller.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("alienness")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage(fs, stdout, stderr, ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return usage(fs, stderr, stderr, ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "alienness version %s\n", version.Version)
		return ExitOK
	}

	cfg, err := config.Load(config.New(), opts.ConfigFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	_ = logger.Initialize(logger.Options{
		JSON:    cfg.Log.JSON,
		Quiet:   cfg.Log.Quiet,
		Verbose: cfg.Log.Verbose,
		Output:  stderr,
	})
	defer logger.Sync()

	if err := Run(parent, cfg, opts.ResultFiles, stdout); err != nil {
		code := ExitCode(err)
		if code != ExitCancelled {
			logger.Logger.Errorw("alienness failed", "error", err.Error())
			for _, h := range errors.GetAllHints(err) {
				logger.Logger.Infow("hint", "hint", h)
			}
		}
		return code
	}
	return ExitOK
}

// Run loads the reference data and results, scores every query and writes
// the output described by cfg. stdout is used when cfg.Output.Path is "-".
func Run(ctx context.Context, cfg *config.Config, resultFiles []string, stdout io.Writer) error {
	log := logger.Logger

	tax, err := taxonomy.LoadNodes(ctx, cfg.Taxonomy.Nodes)
	if err != nil {
		return err
	}
	log.Infow("loaded taxonomy", "path", cfg.Taxonomy.Nodes, "nodes", tax.Len())

	sig, err := taxonomy.LoadSignificant(ctx, cfg.Taxonomy.Significant)
	if err != nil {
		return err
	}
	log.Infow("loaded significant ids", "path", cfg.Taxonomy.Significant, "ids", sig.Len())

	table, st, err := blast.LoadTable(ctx, resultFiles...)
	if err != nil {
		return err
	}
	log.Infow("loaded results",
		"files", len(resultFiles), "queries", table.Len(),
		"rows", st.Rows, "accepted", st.Accepted)
	if st.Skipped() > 0 {
		log.Debugw("skipped results rows",
			"bad_shape", st.BadShape, "missing_taxid", st.MissingTaxa)
	}

	params := alien.Params{
		Donor:    taxonomy.TaxID(cfg.Scoring.DonorTaxID),
		Excluded: taxonomy.TaxID(cfg.Scoring.ExcludedTaxID),
	}
	log.Debugw("lineages",
		"donor", params.Donor, "donor_lineage", tax.Lineage(params.Donor),
		"excluded", params.Excluded, "excluded_lineage", tax.Lineage(params.Excluded))
	if !tax.IsDescendantOf(params.Excluded, params.Donor) && !tax.IsDescendantOf(params.Donor, params.Excluded) {
		log.Debugw("excluded lineage is not nested in the donor lineage")
	}

	threads := runutil.EffectiveThreads(cfg.Scoring.Threads)

	out, closeOut, err := openOutput(cfg.Output.Path, stdout)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)

	inCh, writeErr := writers.StartScoreWriter(bw, cfg.Output.Format, cfg.Output.Header, runutil.ChannelBuffer(threads))

	var scored, na int
	perr := pipeline.ScoreAll(ctx, pipeline.Config{Threads: threads}, table,
		alien.Scorer{Tax: tax, Sig: sig, Params: params},
		func(r alien.Result) error {
			select {
			case inCh <- r:
			case <-ctx.Done():
				return ctx.Err()
			}
			scored++
			if r.Score.NA() {
				na++
			}
			return nil
		},
	)
	close(inCh)

	werr := <-writeErr
	if werr == nil {
		werr = bw.Flush()
	}
	if writers.IsBrokenPipe(werr) {
		werr = nil
	}
	if cerr := closeOut(); werr == nil {
		werr = cerr
	}

	if perr != nil {
		return perr
	}
	if werr != nil {
		return errors.Wrapf(werr, "write %s", cfg.Output.Path)
	}
	log.Infow("scored queries", "queries", scored, "na", na, "output", cfg.Output.Path)
	return nil
}

// ExitCode maps an error from Run onto the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.IsParseError(err), errors.IsUsageError(err):
		return ExitUsage
	default:
		return ExitIO
	}
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create %s", path)
	}
	return fh, fh.Close, nil
}

func usage(fs *flag.FlagSet, w, stderr io.Writer, code int) int {
	bw := bufio.NewWriter(w)
	fs.SetOutput(bw)
	fs.Usage()
	if err := bw.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
	return code
}

// Main runs RunContext with a background context.
func Main(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
