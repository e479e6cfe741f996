package bearprof

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bearprof/bearprof/internal/testutil"
)

func newTestTimer(mock *testutil.MockExecutor, out *bytes.Buffer) *SnippetTimer {
	runner := NewPythonRunner("python3")
	runner.Executor = mock
	return NewSnippetTimer(runner, out)
}

func TestSnippetTimer_Time(t *testing.T) {
	t.Parallel()

	t.Run("label precedes timer output on the same line", func(t *testing.T) {
		t.Parallel()

		mock := &testutil.MockExecutor{
			RunFunc: func(args ...string) ([]byte, error) {
				return []byte("100 loops, best of 3: 1.02 usec per loop\n"), nil
			},
		}
		var out bytes.Buffer
		timer := newTestTimer(mock, &out)

		err := timer.Time(context.Background(), "decoration         [none     ]: ", "setup", "code")
		if err != nil {
			t.Fatalf("Time() error = %v", err)
		}

		want := "decoration         [none     ]: 100 loops, best of 3: 1.02 usec per loop\n"
		if out.String() != want {
			t.Errorf("output = %q, want %q", out.String(), want)
		}
	})

	t.Run("appends newline when timer output has none", func(t *testing.T) {
		t.Parallel()

		mock := &testutil.MockExecutor{
			RunFunc: func(args ...string) ([]byte, error) {
				return []byte("1.02 usec per loop"), nil
			},
		}
		var out bytes.Buffer
		timer := newTestTimer(mock, &out)

		if err := timer.Time(context.Background(), "label: ", "", "code"); err != nil {
			t.Fatalf("Time() error = %v", err)
		}
		if !strings.HasSuffix(out.String(), "\n") {
			t.Errorf("output %q should end with newline", out.String())
		}
	})

	t.Run("validation failures never invoke the external command", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			label string
			code  string
		}{
			{name: "empty label", label: "", code: "code"},
			{name: "multiline label", label: "a\nb", code: "code"},
			{name: "empty code", label: "label: ", code: ""},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				mock := &testutil.MockExecutor{}
				var out bytes.Buffer
				timer := newTestTimer(mock, &out)

				if err := timer.Time(context.Background(), tt.label, "setup", tt.code); err == nil {
					t.Error("Time() = nil, want error")
				}
				if len(mock.Calls) != 0 {
					t.Errorf("executor invoked %d times, want 0", len(mock.Calls))
				}
			})
		}
	})

	t.Run("timer failure terminates the label line", func(t *testing.T) {
		t.Parallel()

		mock := &testutil.MockExecutor{
			RunFunc: func(args ...string) ([]byte, error) {
				return nil, errors.New("import error")
			},
		}
		var out bytes.Buffer
		timer := newTestTimer(mock, &out)

		if err := timer.Time(context.Background(), "label: ", "setup", "code"); err == nil {
			t.Fatal("Time() = nil, want error")
		}
		if out.String() != "label: \n" {
			t.Errorf("output = %q, want label line terminated", out.String())
		}
	})
}
