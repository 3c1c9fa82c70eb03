package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs the program with a context cancelled on SIGINT/SIGTERM and
// exits with its code. No arguments means "-h".
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(Run(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Run is Main without os.Exit, for tests.
func Run(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
