package bearprof

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bearprof/bearprof/internal/testutil"
)

func TestInitCommand_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates settings file", func(t *testing.T) {
		t.Parallel()

		var wrotePath string
		var wroteData []byte
		mockFS := &testutil.MockFS{
			WriteFileFunc: func(name string, data []byte, perm fs.FileMode) error {
				wrotePath = name
				wroteData = data
				return nil
			},
		}
		cmd := NewInitCommand(mockFS)

		result, err := cmd.Run(context.Background(), "/repo", InitOptions{})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !result.Created || result.Skipped || result.Overwritten {
			t.Errorf("result = %+v, want Created only", result)
		}
		if want := filepath.Join("/repo", configDir, configFileName); wrotePath != want {
			t.Errorf("wrote to %q, want %q", wrotePath, want)
		}
		if !strings.Contains(string(wroteData), "# bearprof project configuration") {
			t.Errorf("template missing header:\n%s", wroteData)
		}
	})

	t.Run("skips existing file without force", func(t *testing.T) {
		t.Parallel()

		mockFS := &testutil.MockFS{
			StatFunc: func(name string) (fs.FileInfo, error) { return nil, nil },
			WriteFileFunc: func(name string, data []byte, perm fs.FileMode) error {
				t.Error("WriteFile should not be called")
				return nil
			},
		}
		cmd := NewInitCommand(mockFS)

		result, err := cmd.Run(context.Background(), "/repo", InitOptions{})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !result.Skipped {
			t.Errorf("result = %+v, want Skipped", result)
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		t.Parallel()

		mockFS := &testutil.MockFS{
			StatFunc: func(name string) (fs.FileInfo, error) { return nil, nil },
		}
		cmd := NewInitCommand(mockFS)

		result, err := cmd.Run(context.Background(), "/repo", InitOptions{Force: true})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !result.Created || !result.Overwritten {
			t.Errorf("result = %+v, want Created and Overwritten", result)
		}
	})
}

func TestInitCommand_TemplateParses(t *testing.T) {
	t.Parallel()

	// The generated template (all entries commented out) must load cleanly
	// and leave the defaults untouched.
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, configDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configDir, configFileName), []byte(settingsTemplate), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if result.Config.Python != DefaultPython {
		t.Errorf("Python = %q, want default", result.Config.Python)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestInitResult_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result InitResult
		want   string
	}{
		{
			name:   "created",
			result: InitResult{Created: true},
			want:   "Created " + filepath.Join(configDir, configFileName) + "\n",
		},
		{
			name:   "skipped",
			result: InitResult{Skipped: true},
			want:   "Skipped " + filepath.Join(configDir, configFileName) + " (already exists)\n",
		},
		{
			name:   "overwritten",
			result: InitResult{Created: true, Overwritten: true},
			want:   "Created " + filepath.Join(configDir, configFileName) + " (overwritten)\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.result.Format(InitFormatOptions{})
			if got.Stdout != tt.want {
				t.Errorf("Format() = %q, want %q", got.Stdout, tt.want)
			}
		})
	}
}
