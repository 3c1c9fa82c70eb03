// internal/output/text.go
package output

import (
	"io"
	"strconv"
	"strings"

	"alienness/internal/alien"
	"alienness/internal/errors"
)

// FormatScore renders a score with two decimals, or NA.
func FormatScore(s alien.Score) string {
	if s.NA() {
		return NA
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64)
}

// FormatRow returns "query<TAB>score" without a trailing newline.
func FormatRow(r alien.Result) string {
	return r.Query + "\t" + FormatScore(r.Score)
}

// ParseRow is the inverse of FormatRow. Only Value/Valid are restored.
func ParseRow(line string) (alien.Result, error) {
	line = strings.TrimRight(line, "\r\n")
	f := strings.Split(line, "\t")
	if len(f) != 2 || f[0] == "" {
		return alien.Result{}, errors.Mark(errors.Newf("want 2 fields, got %d in %q", len(f), line), errors.ErrParse)
	}
	r := alien.Result{Query: f[0]}
	if f[1] == NA {
		return r, nil
	}
	v, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return alien.Result{}, errors.Mark(errors.Wrapf(err, "score %q", f[1]), errors.ErrParse)
	}
	r.Score = alien.Score{Value: v, Valid: true}
	return r, nil
}

// WriteText prints one line per result, with an optional header.
func WriteText(w io.Writer, list []alien.Result, header bool) error {
	if header {
		if _, err := io.WriteString(w, TSVHeader+"\n"); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := io.WriteString(w, FormatRow(r)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// StreamText writes results as they arrive on in.
func StreamText(w io.Writer, in <-chan alien.Result, header bool) error {
	if header {
		if _, err := io.WriteString(w, TSVHeader+"\n"); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := io.WriteString(w, FormatRow(r)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
