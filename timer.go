package bearprof

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
)

// SnippetTimer runs one code fragment under the fixed timing protocol after
// one setup fragment. It adds no statistical processing of its own; the
// external timer's result line is forwarded to Out unmodified.
type SnippetTimer struct {
	Python *PythonRunner
	Out    io.Writer
}

// NewSnippetTimer creates a SnippetTimer writing to out.
func NewSnippetTimer(python *PythonRunner, out io.Writer) *SnippetTimer {
	return &SnippetTimer{
		Python: python,
		Out:    out,
	}
}

// Time prints label without a trailing newline, then times code under the
// external timer with setup as initialization. The label must not span
// lines; validation failures return before any external command runs.
func (t *SnippetTimer) Time(ctx context.Context, label, setup, code string) error {
	if label == "" {
		return fmt.Errorf("snippet timer: label must not be empty")
	}
	if strings.ContainsAny(label, "\r\n") {
		return fmt.Errorf("snippet timer: label %q must be a single line", label)
	}
	if code == "" {
		return fmt.Errorf("snippet timer: code must not be empty")
	}

	fmt.Fprint(t.Out, label)

	out, err := t.Python.Timeit(ctx, setup, code)
	if err != nil {
		// Terminate the label line so the error does not glue onto it.
		fmt.Fprintln(t.Out)
		return err
	}

	if _, err := t.Out.Write(out); err != nil {
		return err
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		fmt.Fprintln(t.Out)
	}
	return nil
}
