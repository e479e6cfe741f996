package bearprof

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ProfilerVersion is printed in the header line. Kept from the tool this
// profiler descends from; the header text is part of the output contract.
const ProfilerVersion = "0.0.1"

// Mode column labels for the six variants of a scenario.
const (
	modeDecoration      = "decoration"
	modeDecorationCalls = "decoration + calls"
)

// ProfileCommand runs the benchmark battery: a version header, interpreter
// and library version lines, then per scenario a banner, the echoed snippet
// source, and six timed variants in fixed order.
type ProfileCommand struct {
	Python *PythonRunner
	Timer  *SnippetTimer
	Banner *BannerPrinter
	Config *Config
	Out    io.Writer

	log *slog.Logger
}

// ProfileOptions holds options for the profile command.
type ProfileOptions struct {
	// Filters restricts scenarios by label glob. Overrides the config's
	// `only` patterns when non-empty.
	Filters []string
}

// ProfileResult summarizes a completed run.
type ProfileResult struct {
	ScenariosRun  int
	VariantsTimed int
}

// NewProfileCommand creates a ProfileCommand with explicit dependencies
// (for testing).
func NewProfileCommand(python *PythonRunner, timer *SnippetTimer, banner *BannerPrinter, cfg *Config, log *slog.Logger, out io.Writer) *ProfileCommand {
	if log == nil {
		log = NewNopLogger()
	}
	return &ProfileCommand{
		Python: python,
		Timer:  timer,
		Banner: banner,
		Config: cfg,
		Out:    out,
		log:    log,
	}
}

// NewDefaultProfileCommand creates a ProfileCommand with production defaults.
func NewDefaultProfileCommand(cfg *Config, log *slog.Logger, out io.Writer) *ProfileCommand {
	python := NewPythonRunner(cfg.Python, WithPythonLogger(log))
	return NewProfileCommand(python, NewSnippetTimer(python, out), NewBannerPrinter(out), cfg, log, out)
}

// Run executes the battery. Output is written progressively; the first
// error aborts the whole run.
func (c *ProfileCommand) Run(ctx context.Context, opts ProfileOptions) (ProfileResult, error) {
	var result ProfileResult

	if err := c.printHeader(ctx); err != nil {
		return result, err
	}

	patterns := opts.Filters
	if len(patterns) == 0 {
		patterns = c.Config.Only
	}
	scenarios, err := FilterScenarios(c.Config.Scenarios, patterns)
	if err != nil {
		return result, err
	}

	for _, s := range scenarios {
		timed, err := c.runScenario(ctx, s)
		result.VariantsTimed += timed
		if err != nil {
			return result, err
		}
		result.ScenariosRun++
	}

	return result, nil
}

// printHeader prints the profiler version followed by interpreter and
// library version lines, aligned on the widest name.
func (c *ProfileCommand) printHeader(ctx context.Context) error {
	fmt.Fprintf(c.Out, "beartype profiler [version]: %s\n", ProfilerVersion)
	fmt.Fprintln(c.Out)

	width := len("python")
	for _, lib := range c.Config.Libraries {
		if len(lib.Name) > width {
			width = len(lib.Name)
		}
	}

	fmt.Fprintf(c.Out, "%-*s [basename]: %s\n", width, "python", c.Python.Basename())

	interpVersion, err := c.Python.InterpreterVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "%-*s [version]: %s\n", width, "python", interpVersion)

	for _, lib := range c.Config.Libraries {
		version, err := c.Python.ModuleVersion(ctx, lib)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "%-*s [version]: %s\n", width, lib.Name, version)
	}
	return nil
}

// runScenario times the six variants of one scenario and returns how many
// timer invocations completed.
func (c *ProfileCommand) runScenario(ctx context.Context, s Scenario) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	c.log.Info("profiling "+s.Label, LogAttrKeyCategory.Attr(LogCategoryProfile))

	if err := c.Banner.Print(s.Label); err != nil {
		return 0, err
	}

	// Echo the snippet source once per scenario for operator visibility.
	iw := NewIndentWriter(c.Out, "    ")
	iw.Writeln("function:")
	iw.Indent().WriteBlock(s.FuncDef)
	iw.Dedent().Writeln("calls:")
	iw.Indent().WriteBlock(s.RepeatedCall())
	iw.Blankln()

	// Undecorated baseline first, then each library, for both call modes.
	decorations := make([]Library, 0, len(c.Config.Libraries)+1)
	decorations = append(decorations, Library{Name: "none"})
	decorations = append(decorations, c.Config.Libraries...)

	nameWidth := 0
	for _, lib := range decorations {
		if len(lib.Name) > nameWidth {
			nameWidth = len(lib.Name)
		}
	}

	timed := 0
	for _, repeated := range []bool{false, true} {
		mode := modeDecoration
		if repeated {
			mode = modeDecorationCalls
		}
		for _, lib := range decorations {
			label := fmt.Sprintf("%-*s [%-*s]: ", len(modeDecorationCalls), mode, nameWidth, lib.Name)
			code := s.Variant(lib, repeated)
			if err := c.Timer.Time(ctx, label, s.Setup, code); err != nil {
				return timed, err
			}
			timed++
		}
	}
	return timed, nil
}
