package bearprof

import (
	"fmt"
	"strings"
)

// callRepetitions is the loop count for the "decoration + calls" variants.
// Fixed regardless of scenario content.
const callRepetitions = 100

// Scenario is one named benchmark case. All fields are Python source
// fragments consumed verbatim; Setup runs once before timing starts.
type Scenario struct {
	Label   string
	Setup   string
	FuncDef string
	Call    string
}

// Library describes one runtime type-checking decorator library under
// comparison. Import and Decoration are prepended to a scenario's function
// definition to produce a decorated variant. VersionAttr names the module
// attribute holding the version string; when empty, the version is resolved
// through package metadata instead.
type Library struct {
	Name        string
	Module      string
	Import      string
	Decoration  string
	VersionAttr string
}

// Decorated reports whether this entry actually decorates the function.
// The undecorated baseline is modeled as a Library with no fragments.
func (l Library) Decorated() bool {
	return l.Import != "" || l.Decoration != ""
}

// Validate checks that a scenario has all fragments a variant needs.
func (s Scenario) Validate() error {
	if s.Label == "" {
		return fmt.Errorf("scenario label must not be empty")
	}
	if strings.ContainsAny(s.Label, "\r\n") {
		return fmt.Errorf("scenario label %q must be a single line", s.Label)
	}
	if s.FuncDef == "" {
		return fmt.Errorf("scenario %q has no function definition", s.Label)
	}
	if s.Call == "" {
		return fmt.Errorf("scenario %q has no call expression", s.Label)
	}
	return nil
}

// Validate checks that a library entry is usable as a decoration.
func (l Library) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("library name must not be empty")
	}
	if l.Module == "" {
		return fmt.Errorf("library %q has no module", l.Name)
	}
	if l.Import == "" || l.Decoration == "" {
		return fmt.Errorf("library %q needs both import and decoration fragments", l.Name)
	}
	return nil
}

// RepeatedCall wraps the call expression in a fixed 100-iteration loop.
func (s Scenario) RepeatedCall() string {
	return fmt.Sprintf("for _ in range(%d): %s", callRepetitions, s.Call)
}

// Variant renders one timeable snippet: the library's import and decoration
// fragments (if any), the function definition, and optionally the repeated
// call loop.
func (s Scenario) Variant(lib Library, repeated bool) string {
	var sb strings.Builder
	if lib.Decorated() {
		sb.WriteString(lib.Import)
		sb.WriteString("\n")
		sb.WriteString(lib.Decoration)
		sb.WriteString("\n")
	}
	sb.WriteString(s.FuncDef)
	if repeated {
		sb.WriteString("\n")
		sb.WriteString(s.RepeatedCall())
	}
	return sb.String()
}

// builtinScenarios is the fixed battery run when no config adds more.
var builtinScenarios = []Scenario{
	{
		Label: "UNION",
		Setup: "from typing import Union",
		FuncDef: `def panther_canter(
    quick_foot: Union[int, str]) -> Union[int, str]:
    return quick_foot`,
		Call: "panther_canter('Bagheera')",
	},
}

// builtinLibraries are the decorator libraries compared by default.
// beartype self-reports its version; typeguard does not, so it falls back
// to package metadata.
var builtinLibraries = []Library{
	{
		Name:        "beartype",
		Module:      "beartype",
		Import:      "from beartype import beartype",
		Decoration:  "@beartype",
		VersionAttr: "__version__",
	},
	{
		Name:       "typeguard",
		Module:     "typeguard",
		Import:     "from typeguard import typechecked",
		Decoration: "@typechecked",
	},
}

// BuiltinScenarios returns a copy of the default scenario battery.
func BuiltinScenarios() []Scenario {
	out := make([]Scenario, len(builtinScenarios))
	copy(out, builtinScenarios)
	return out
}

// BuiltinLibraries returns a copy of the default libraries under test.
func BuiltinLibraries() []Library {
	out := make([]Library, len(builtinLibraries))
	copy(out, builtinLibraries)
	return out
}
