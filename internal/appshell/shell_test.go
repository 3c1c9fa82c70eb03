package appshell

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestRun_EmptyArgvBecomesHelp(t *testing.T) {
	var got []string
	code := Run(func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	if code != 0 || len(got) != 1 || got[0] != "-h" {
		t.Fatalf("code=%d argv=%v", code, got)
	}
}

func TestRun_PassesCode(t *testing.T) {
	code := Run(func(context.Context, []string, io.Writer, io.Writer) int { return 3 },
		[]string{"-b", "x"}, &bytes.Buffer{}, &bytes.Buffer{})
	if code != 3 {
		t.Fatalf("want 3, got %d", code)
	}
}
