package bearprof

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"
)

// ListCommand lists the configured scenarios and libraries.
type ListCommand struct {
	Config *Config
}

// NewListCommand creates a new ListCommand.
func NewListCommand(cfg *Config) *ListCommand {
	return &ListCommand{
		Config: cfg,
	}
}

// ListResult holds the result of a list operation.
type ListResult struct {
	Scenarios []Scenario
	Libraries []Library
}

// ListFormatOptions holds formatting options for ListResult.
type ListFormatOptions struct {
	Quiet bool
}

// Run returns the configured battery.
func (c *ListCommand) Run(ctx context.Context) (ListResult, error) {
	return ListResult{
		Scenarios: c.Config.Scenarios,
		Libraries: c.Config.Libraries,
	}, nil
}

// Format formats the ListResult for display.
func (r ListResult) Format(opts ListFormatOptions) FormatResult {
	var buf bytes.Buffer

	if opts.Quiet {
		for _, s := range r.Scenarios {
			fmt.Fprintln(&buf, s.Label)
		}
		return FormatResult{Stdout: buf.String()}
	}

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "scenarios:")
	for _, s := range r.Scenarios {
		fmt.Fprintf(w, "  %s\t%s\n", s.Label, s.Call)
	}
	fmt.Fprintln(w, "libraries:")
	for _, l := range r.Libraries {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", l.Name, l.Import, l.Decoration)
	}
	w.Flush()

	return FormatResult{Stdout: buf.String()}
}
