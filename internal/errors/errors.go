// Package errors provides error handling for alienness.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// wrapping and user-facing hints from one import:
//
//	if err := load(path); err != nil {
//	    return errors.Wrapf(err, "load %s", path)
//	}
//
// Malformed input is marked with ErrParse and detected with errors.Is.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	FlattenHints = crdb.FlattenHints
	GetAllHints  = crdb.GetAllHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

var (
	// ErrParse marks malformed numeric or structural input in a taxonomy,
	// significant-id or results file.
	ErrParse = New("parse error")

	// ErrUsage marks invalid command-line or configuration values.
	ErrUsage = New("usage error")
)

// Parsef builds an error marked as ErrParse, located at path:line.
func Parsef(path string, line int, format string, args ...interface{}) error {
	err := Newf(format, args...)
	err = Wrapf(err, "%s:%d", path, line)
	return Mark(err, ErrParse)
}

// IsParseError reports whether err is or wraps ErrParse.
func IsParseError(err error) bool {
	return err != nil && Is(err, ErrParse)
}

// IsUsageError reports whether err is or wraps ErrUsage.
func IsUsageError(err error) bool {
	return err != nil && Is(err, ErrUsage)
}
