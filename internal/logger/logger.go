// Package logger holds the process-wide zap logger.
//
// Logs always go to stderr (or the writer passed in Options) so that result
// rows written to stdout stay machine readable.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It is a no-op until Initialize is called.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Options selects format and verbosity.
type Options struct {
	JSON    bool
	Quiet   bool // warnings and errors only
	Verbose bool // include debug records (skipped rows, lineages)
	Output  io.Writer
}

// Level maps Options onto a zap level. Quiet wins over Verbose.
func (o Options) Level() zapcore.Level {
	switch {
	case o.Quiet:
		return zap.WarnLevel
	case o.Verbose:
		return zap.DebugLevel
	default:
		return zap.InfoLevel
	}
}

// Initialize replaces the global logger.
func Initialize(o Options) error {
	Logger = New(o).Sugar()
	return nil
}

// New builds a standalone logger without touching the global one.
func New(o Options) *zap.Logger {
	var w io.Writer = os.Stderr
	if o.Output != nil {
		w = o.Output
	}

	var enc zapcore.Encoder
	if o.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), o.Level()))
}

// Sync flushes buffered records. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
