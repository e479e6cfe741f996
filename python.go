package bearprof

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Timing protocol forwarded to the external timer. The timer owns all
// statistics (warm-up, best-of-N, unit formatting); these only size its run.
const (
	timeitIterations = 100
	timeitRepeats    = 3
)

// Executor abstracts Python interpreter invocation for testability.
// The binary is fixed at construction - only arguments are passed.
type Executor interface {
	// Run executes the interpreter with args and returns stdout.
	Run(ctx context.Context, args ...string) ([]byte, error)
}

type osExecutor struct {
	bin string
}

func (e osExecutor) Run(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, e.bin, args...).Output()
}

// PythonRunner provides snippet timing and version queries using Executor.
type PythonRunner struct {
	Executor Executor

	bin      string
	lookPath func(string) (string, error)
	log      *slog.Logger
}

// PythonRunnerOption configures NewPythonRunner.
type PythonRunnerOption func(*PythonRunner)

// WithPythonLogger sets the logger for interpreter invocations.
func WithPythonLogger(log *slog.Logger) PythonRunnerOption {
	return func(r *PythonRunner) {
		r.log = log
	}
}

// WithLookPath sets the search-path lookup function (for testing).
func WithLookPath(lookPath func(string) (string, error)) PythonRunnerOption {
	return func(r *PythonRunner) {
		r.lookPath = lookPath
	}
}

// NewPythonRunner creates a PythonRunner for the given interpreter binary
// with the default executor.
func NewPythonRunner(bin string, opts ...PythonRunnerOption) *PythonRunner {
	r := &PythonRunner{
		Executor: osExecutor{bin: bin},
		bin:      bin,
		lookPath: exec.LookPath,
		log:      NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Basename returns the interpreter binary name without directories.
func (r *PythonRunner) Basename() string {
	return filepath.Base(r.bin)
}

// Available reports whether the interpreter exists on the search path.
// Returns the resolved path on success; produces no output either way.
func (r *PythonRunner) Available() (string, bool) {
	path, err := r.lookPath(r.bin)
	if err != nil {
		return "", false
	}
	return path, true
}

// Timeit runs code under the external statistical timer after executing
// setup once. Returns the timer's human-readable summary verbatim.
func (r *PythonRunner) Timeit(ctx context.Context, setup, code string) ([]byte, error) {
	if code == "" {
		return nil, fmt.Errorf("timeit: code must not be empty")
	}
	args := []string{
		"-m", "timeit",
		"-n", strconv.Itoa(timeitIterations),
		"-r", strconv.Itoa(timeitRepeats),
	}
	if setup != "" {
		args = append(args, "-s", setup)
	}
	args = append(args, code)

	r.log.Debug("timeit "+code, LogAttrKeyCategory.Attr(LogCategoryPython))
	out, err := r.Executor.Run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("timeit failed: %w", err)
	}
	return out, nil
}

// ImportCheck reports whether the named module is importable.
func (r *PythonRunner) ImportCheck(ctx context.Context, module string) error {
	r.log.Debug("import "+module, LogAttrKeyCategory.Attr(LogCategoryPython))
	if _, err := r.Executor.Run(ctx, "-c", "import "+module); err != nil {
		return fmt.Errorf("module %q is not importable: %w", module, err)
	}
	return nil
}

// ModuleVersion resolves a library's version string. Libraries that
// self-report a version attribute are asked directly; everything else goes
// through the package metadata facility.
func (r *PythonRunner) ModuleVersion(ctx context.Context, lib Library) (string, error) {
	if lib.VersionAttr != "" {
		stmt := fmt.Sprintf("import %s; print(%s.%s)", lib.Module, lib.Module, lib.VersionAttr)
		r.log.Debug(stmt, LogAttrKeyCategory.Attr(LogCategoryPython))
		out, err := r.Executor.Run(ctx, "-c", stmt)
		if err == nil {
			return strings.TrimSpace(string(out)), nil
		}
		// Fall through to metadata; the attribute may be absent in some
		// releases of the library.
	}

	stmt := fmt.Sprintf("from importlib.metadata import version; print(version(%q))", lib.Module)
	r.log.Debug(stmt, LogAttrKeyCategory.Attr(LogCategoryPython))
	out, err := r.Executor.Run(ctx, "-c", stmt)
	if err != nil {
		return "", fmt.Errorf("failed to resolve version of %q: %w", lib.Module, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// InterpreterVersion returns the interpreter's own version line,
// e.g. "Python 3.12.1".
func (r *PythonRunner) InterpreterVersion(ctx context.Context) (string, error) {
	out, err := r.Executor.Run(ctx, "--version")
	if err != nil {
		return "", fmt.Errorf("failed to query interpreter version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
