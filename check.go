package bearprof

import (
	"context"
	"fmt"
	"strings"
)

// CheckCommand validates that the profiling environment is usable: the
// interpreter exists, the external timer is importable, and every library
// under comparison imports cleanly.
type CheckCommand struct {
	Python *PythonRunner
	Config *Config
}

// CheckSeverity represents the severity level of a check item.
type CheckSeverity string

const (
	SeverityOK    CheckSeverity = "ok"
	SeverityInfo  CheckSeverity = "info"
	SeverityWarn  CheckSeverity = "warn"
	SeverityError CheckSeverity = "error"
)

// CheckCategory represents the category of a check item.
type CheckCategory string

const (
	CategoryInterpreter CheckCategory = "interpreter"
	CategoryLibraries   CheckCategory = "libraries"
)

// CheckItem represents a single check result.
type CheckItem struct {
	Category   CheckCategory
	Severity   CheckSeverity
	Message    string
	Suggestion string
}

// CheckResult holds the result of all checks.
type CheckResult struct {
	Items []CheckItem
}

// CheckFormatOptions holds formatting options for CheckResult.
type CheckFormatOptions struct {
	Verbose      bool
	Quiet        bool
	ColorEnabled bool
}

// NewCheckCommand creates a CheckCommand with explicit dependencies (for testing).
func NewCheckCommand(python *PythonRunner, cfg *Config) *CheckCommand {
	return &CheckCommand{
		Python: python,
		Config: cfg,
	}
}

// NewDefaultCheckCommand creates a CheckCommand with production defaults.
func NewDefaultCheckCommand(cfg *Config) *CheckCommand {
	return NewCheckCommand(NewPythonRunner(cfg.Python), cfg)
}

// Run executes all checks and returns the result.
func (c *CheckCommand) Run(ctx context.Context) (CheckResult, error) {
	var result CheckResult

	// Without an interpreter no other check can run.
	if !c.checkInterpreter(ctx, &result) {
		return result, nil
	}
	c.checkLibraries(ctx, &result)

	return result, nil
}

// checkInterpreter verifies the interpreter and the external timer.
// Returns false when library checks cannot proceed.
func (c *CheckCommand) checkInterpreter(ctx context.Context, result *CheckResult) bool {
	path, ok := c.Python.Available()
	if !ok {
		result.Items = append(result.Items, CheckItem{
			Category:   CategoryInterpreter,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("%s not found on PATH", c.Python.Basename()),
			Suggestion: "install Python 3 or set python in " + configDir + "/" + configFileName,
		})
		return false
	}
	result.Items = append(result.Items, CheckItem{
		Category: CategoryInterpreter,
		Severity: SeverityOK,
		Message:  fmt.Sprintf("%s found: %s", c.Python.Basename(), path),
	})

	if version, err := c.Python.InterpreterVersion(ctx); err != nil {
		result.Items = append(result.Items, CheckItem{
			Category: CategoryInterpreter,
			Severity: SeverityWarn,
			Message:  fmt.Sprintf("failed to query interpreter version: %v", err),
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Category: CategoryInterpreter,
			Severity: SeverityInfo,
			Message:  version,
		})
	}

	if err := c.Python.ImportCheck(ctx, "timeit"); err != nil {
		result.Items = append(result.Items, CheckItem{
			Category:   CategoryInterpreter,
			Severity:   SeverityError,
			Message:    "timeit module is not importable",
			Suggestion: "the interpreter installation looks broken; reinstall Python",
		})
		return false
	}
	result.Items = append(result.Items, CheckItem{
		Category: CategoryInterpreter,
		Severity: SeverityOK,
		Message:  "timeit module importable",
	})

	return true
}

func (c *CheckCommand) checkLibraries(ctx context.Context, result *CheckResult) {
	for _, lib := range c.Config.Libraries {
		if err := c.Python.ImportCheck(ctx, lib.Module); err != nil {
			result.Items = append(result.Items, CheckItem{
				Category:   CategoryLibraries,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("%s is not importable", lib.Name),
				Suggestion: fmt.Sprintf("run 'pip install %s'", lib.Module),
			})
			continue
		}

		version, err := c.Python.ModuleVersion(ctx, lib)
		if err != nil {
			result.Items = append(result.Items, CheckItem{
				Category: CategoryLibraries,
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("%s importable but version unknown: %v", lib.Name, err),
			})
			continue
		}
		result.Items = append(result.Items, CheckItem{
			Category: CategoryLibraries,
			Severity: SeverityOK,
			Message:  fmt.Sprintf("%s importable (version %s)", lib.Name, version),
		})
	}
}

// ErrorCount returns the number of errors.
func (r CheckResult) ErrorCount() int {
	count := 0
	for _, item := range r.Items {
		if item.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func (r CheckResult) WarningCount() int {
	count := 0
	for _, item := range r.Items {
		if item.Severity == SeverityWarn {
			count++
		}
	}
	return count
}

// InfoCount returns the number of info items.
func (r CheckResult) InfoCount() int {
	count := 0
	for _, item := range r.Items {
		if item.Severity == SeverityInfo {
			count++
		}
	}
	return count
}

// Format formats the CheckResult for display.
func (r CheckResult) Format(opts CheckFormatOptions) FormatResult {
	var stdout strings.Builder

	if opts.Quiet {
		// Quiet mode: only show errors
		for _, item := range r.Items {
			if item.Severity == SeverityError {
				fmt.Fprintf(&stdout, "[error] %s\n", item.Message)
			}
		}
		return FormatResult{Stdout: stdout.String()}
	}

	interpreterItems := r.filterByCategory(CategoryInterpreter)
	libraryItems := r.filterByCategory(CategoryLibraries)

	if len(interpreterItems) > 0 {
		r.formatCategory(&stdout, "interpreter:", interpreterItems, opts)
	}
	if len(libraryItems) > 0 {
		if len(interpreterItems) > 0 {
			fmt.Fprintln(&stdout)
		}
		r.formatCategory(&stdout, "libraries:", libraryItems, opts)
	}

	fmt.Fprintf(&stdout, "\nSummary: %d errors, %d warnings, %d info\n",
		r.ErrorCount(), r.WarningCount(), r.InfoCount())

	return FormatResult{Stdout: stdout.String()}
}

func (r CheckResult) filterByCategory(cat CheckCategory) []CheckItem {
	var items []CheckItem
	for _, item := range r.Items {
		if item.Category == cat {
			items = append(items, item)
		}
	}
	return items
}

func (r CheckResult) formatCategory(w *strings.Builder, header string, items []CheckItem, opts CheckFormatOptions) {
	fmt.Fprintln(w, header)

	for _, item := range items {
		// Skip ok items unless verbose
		if item.Severity == SeverityOK && !opts.Verbose {
			continue
		}

		fmt.Fprintf(w, "  [%s] %s\n", formatSeverity(item.Severity, opts.ColorEnabled), item.Message)
		if item.Suggestion != "" {
			fmt.Fprintf(w, "         suggestion: %s\n", item.Suggestion)
		}
	}
}

func formatSeverity(s CheckSeverity, colorEnabled bool) string {
	if !colorEnabled {
		return string(s)
	}
	switch s {
	case SeverityError:
		return colorCheckError(string(s))
	case SeverityWarn:
		return colorCheckWarn(string(s))
	case SeverityOK:
		return colorCheckOK(string(s))
	default:
		return string(s)
	}
}
