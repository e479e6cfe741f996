package bearprof

import (
	"testing"

	"github.com/fatih/color"
)

func TestSetColorMode(t *testing.T) {
	// Not parallel: mutates global color state.
	original := color.NoColor
	defer func() { color.NoColor = original }()

	SetColorMode(ColorModeAlways)
	if !IsColorEnabled() {
		t.Error("IsColorEnabled() = false after ColorModeAlways")
	}

	SetColorMode(ColorModeNever)
	if IsColorEnabled() {
		t.Error("IsColorEnabled() = true after ColorModeNever")
	}
}
