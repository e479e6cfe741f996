package bearprof

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterScenarios returns the scenarios whose label matches at least one of
// the glob patterns. An empty pattern list keeps everything; an invalid
// pattern is an error.
func FilterScenarios(scenarios []Scenario, patterns []string) ([]Scenario, error) {
	if len(patterns) == 0 {
		return scenarios, nil
	}

	// Validate all patterns up front so a bad one fails the run even when
	// earlier patterns already matched.
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid filter pattern %q", p)
		}
	}

	var out []Scenario
	for _, s := range scenarios {
		for _, p := range patterns {
			ok, err := doublestar.Match(p, s.Label)
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern %q: %w", p, err)
			}
			if ok {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}
