package bearprof

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, dir, name, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, configDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	result, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	cfg := result.Config
	if cfg.Python != DefaultPython {
		t.Errorf("Python = %q, want %q", cfg.Python, DefaultPython)
	}
	if len(cfg.Scenarios) != 1 || cfg.Scenarios[0].Label != "UNION" {
		t.Errorf("Scenarios = %+v, want built-in UNION battery", cfg.Scenarios)
	}
	if len(cfg.Libraries) != 2 {
		t.Errorf("Libraries = %+v, want beartype and typeguard", cfg.Libraries)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestLoadConfig_ProjectSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, configFileName, `
python = "python3.12"
only = ["UNION*"]

[[scenarios]]
label = "LIST"
setup = "from typing import List"
funcdef = "def herd_gallop(h: List[int]) -> List[int]:\n    return h"
call = "herd_gallop([1, 2, 3])"

[[libraries]]
name = "pydantic"
module = "pydantic"
import = "from pydantic import validate_call"
decoration = "@validate_call"
`)

	result, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	cfg := result.Config
	if cfg.Python != "python3.12" {
		t.Errorf("Python = %q, want python3.12", cfg.Python)
	}
	if len(cfg.Only) != 1 || cfg.Only[0] != "UNION*" {
		t.Errorf("Only = %v, want [UNION*]", cfg.Only)
	}
	if len(cfg.Scenarios) != 2 || cfg.Scenarios[1].Label != "LIST" {
		t.Errorf("Scenarios = %+v, want built-ins plus LIST", cfg.Scenarios)
	}
	if len(cfg.Libraries) != 3 || cfg.Libraries[2].Name != "pydantic" {
		t.Errorf("Libraries = %+v, want built-ins plus pydantic", cfg.Libraries)
	}
}

func TestLoadConfig_LocalOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, configFileName, `python = "python3.11"`)
	writeSettings(t, dir, localConfigFileName, `python = "python3.13"`)

	result, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if result.Config.Python != "python3.13" {
		t.Errorf("Python = %q, want local override python3.13", result.Config.Python)
	}
}

func TestLoadConfig_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		settings    string
		wantWarning string
	}{
		{
			name: "duplicate scenario label",
			settings: `
[[scenarios]]
label = "UNION"
funcdef = "def f(): pass"
call = "f()"
`,
			wantWarning: `duplicate scenario label "UNION"`,
		},
		{
			name: "duplicate library name",
			settings: `
[[libraries]]
name = "beartype"
module = "beartype"
import = "from beartype import beartype"
decoration = "@beartype"
`,
			wantWarning: `duplicate library name "beartype"`,
		},
		{
			name: "invalid scenario skipped",
			settings: `
[[scenarios]]
label = "BROKEN"
funcdef = "def f(): pass"
`,
			wantWarning: "skipping scenario",
		},
		{
			name: "invalid library skipped",
			settings: `
[[libraries]]
name = "mystery"
`,
			wantWarning: "skipping library",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeSettings(t, dir, configFileName, tt.settings)

			result, err := LoadConfig(dir)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if len(result.Warnings) == 0 {
				t.Fatal("expected a warning, got none")
			}
			if !strings.Contains(result.Warnings[0], tt.wantWarning) {
				t.Errorf("warning = %q, want contains %q", result.Warnings[0], tt.wantWarning)
			}
			// Skipped entries must not grow the battery.
			if len(result.Config.Scenarios) != 1 {
				t.Errorf("Scenarios grew to %d, want 1", len(result.Config.Scenarios))
			}
			if len(result.Config.Libraries) != 2 {
				t.Errorf("Libraries grew to %d, want 2", len(result.Config.Libraries))
			}
		})
	}
}

func TestLoadConfig_MalformedTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, configFileName, `python = [broken`)

	if _, err := LoadConfig(dir); err == nil {
		t.Error("LoadConfig() = nil, want parse error")
	}
}
