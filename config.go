package bearprof

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	configDir           = ".bearprof"
	configFileName      = "settings.toml"
	localConfigFileName = "settings.local.toml"

	// DefaultPython is the interpreter used when config names none.
	DefaultPython = "python3"
)

// Config holds the effective profiler configuration: the interpreter to
// spawn, optional label filters, and the full scenario/library battery
// (built-ins plus any config additions).
type Config struct {
	Python    string
	Only      []string
	Scenarios []Scenario
	Libraries []Library
}

// LoadResult holds a loaded config plus non-fatal warnings for the caller
// to surface.
type LoadResult struct {
	Config   *Config
	Warnings []string
}

// configFile mirrors the on-disk TOML shape.
type configFile struct {
	Python    string          `toml:"python"`
	Only      []string        `toml:"only"`
	Scenarios []scenarioEntry `toml:"scenarios"`
	Libraries []libraryEntry  `toml:"libraries"`
}

type scenarioEntry struct {
	Label   string `toml:"label"`
	Setup   string `toml:"setup"`
	FuncDef string `toml:"funcdef"`
	Call    string `toml:"call"`
}

type libraryEntry struct {
	Name        string `toml:"name"`
	Module      string `toml:"module"`
	Import      string `toml:"import"`
	Decoration  string `toml:"decoration"`
	VersionAttr string `toml:"version_attr"`
}

// LoadConfig loads .bearprof/settings.toml and settings.local.toml from dir
// and merges them over the built-in defaults. Scalar fields from the local
// file win; scenario and library lists append in file order, skipping
// duplicates by label/name with a warning. A missing file is not an error.
func LoadConfig(dir string) (*LoadResult, error) {
	result := &LoadResult{
		Config: &Config{
			Python:    DefaultPython,
			Scenarios: BuiltinScenarios(),
			Libraries: BuiltinLibraries(),
		},
	}

	paths := []string{
		filepath.Join(dir, configDir, configFileName),
		filepath.Join(dir, configDir, localConfigFileName),
	}
	for _, path := range paths {
		file, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		if file == nil {
			continue
		}
		result.merge(file)
	}

	return result, nil
}

func loadConfigFile(path string) (*configFile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var file configFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &file, nil
}

func (r *LoadResult) merge(file *configFile) {
	cfg := r.Config

	if file.Python != "" {
		cfg.Python = file.Python
	}
	if len(file.Only) > 0 {
		cfg.Only = file.Only
	}

	for _, entry := range file.Scenarios {
		s := Scenario(entry)
		if err := s.Validate(); err != nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("skipping scenario: %v", err))
			continue
		}
		if cfg.hasScenario(s.Label) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("duplicate scenario label %q ignored", s.Label))
			continue
		}
		cfg.Scenarios = append(cfg.Scenarios, s)
	}

	for _, entry := range file.Libraries {
		l := Library(entry)
		if err := l.Validate(); err != nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("skipping library: %v", err))
			continue
		}
		if cfg.hasLibrary(l.Name) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("duplicate library name %q ignored", l.Name))
			continue
		}
		cfg.Libraries = append(cfg.Libraries, l)
	}
}

func (c *Config) hasScenario(label string) bool {
	for _, s := range c.Scenarios {
		if s.Label == label {
			return true
		}
	}
	return false
}

func (c *Config) hasLibrary(name string) bool {
	for _, l := range c.Libraries {
		if l.Name == name {
			return true
		}
	}
	return false
}
