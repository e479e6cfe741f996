package bearprof

import (
	"context"
	"fmt"
	"path/filepath"
)

const settingsTemplate = `# bearprof project configuration

# Python interpreter used to run snippets (default: python3)
# python = "python3.12"

# Restrict the battery to scenarios whose label matches one of these globs
# only = ["UNION"]

# Additional scenarios to profile
# [[scenarios]]
# label = "LIST"
# setup = "from typing import List"
# funcdef = """
# def herd_gallop(hooves: List[int]) -> List[int]:
#     return hooves"""
# call = "herd_gallop([1, 2, 3])"

# Additional decorator libraries to compare
# [[libraries]]
# name = "pydantic"
# module = "pydantic"
# import = "from pydantic import validate_call"
# decoration = "@validate_call"
# version_attr = "VERSION"
`

// InitCommand initializes bearprof configuration in a directory.
type InitCommand struct {
	FS FileSystem
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Force bool
}

// InitResult holds the result of the init command.
type InitResult struct {
	ConfigDir    string
	SettingsPath string
	Created      bool
	Skipped      bool
	Overwritten  bool
}

// InitFormatOptions holds formatting options for InitResult.
type InitFormatOptions struct {
	Verbose bool
}

// NewInitCommand creates an InitCommand with explicit dependencies (for testing).
func NewInitCommand(fs FileSystem) *InitCommand {
	return &InitCommand{
		FS: fs,
	}
}

// NewDefaultInitCommand creates an InitCommand with production defaults.
func NewDefaultInitCommand() *InitCommand {
	return NewInitCommand(osFS{})
}

// Run executes the init command.
func (c *InitCommand) Run(ctx context.Context, dir string, opts InitOptions) (InitResult, error) {
	configDirPath := filepath.Join(dir, configDir)
	settingsPath := filepath.Join(configDirPath, configFileName)

	result := InitResult{
		ConfigDir:    configDirPath,
		SettingsPath: settingsPath,
	}

	// Check if settings file already exists
	_, err := c.FS.Stat(settingsPath)
	exists := err == nil || !c.FS.IsNotExist(err)

	if exists && !opts.Force {
		result.Skipped = true
		return result, nil
	}

	if err := c.FS.MkdirAll(configDirPath, 0755); err != nil {
		return result, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := c.FS.WriteFile(settingsPath, []byte(settingsTemplate), 0644); err != nil {
		return result, fmt.Errorf("failed to write settings file: %w", err)
	}

	result.Created = true
	if exists {
		result.Overwritten = true
	}

	return result, nil
}

// Format formats the result for output.
func (r InitResult) Format(opts InitFormatOptions) FormatResult {
	var stdout string

	relPath := filepath.Join(configDir, configFileName)

	switch {
	case r.Skipped:
		stdout = fmt.Sprintf("Skipped %s (already exists)\n", relPath)
	case r.Overwritten:
		stdout = fmt.Sprintf("Created %s (overwritten)\n", relPath)
	case r.Created:
		stdout = fmt.Sprintf("Created %s\n", relPath)
	}

	return FormatResult{
		Stdout: stdout,
	}
}
