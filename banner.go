package bearprof

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// bannerFill is the character repeated on both sides of a banner label.
const bannerFill = "="

// TerminalSizer abstracts terminal capability queries for testability.
type TerminalSizer interface {
	// IsTerminal reports whether output goes to an interactive terminal.
	IsTerminal() bool
	// Width returns the terminal width in columns.
	Width() (int, error)
}

type stdoutTerminal struct{}

func (stdoutTerminal) IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (stdoutTerminal) Width() (int, error) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	return width, err
}

// BannerPrinter prints a label centered and padded with fill characters to
// the terminal width. Cosmetic only.
type BannerPrinter struct {
	Out      io.Writer
	Terminal TerminalSizer
}

// NewBannerPrinter creates a BannerPrinter that sizes against stdout.
func NewBannerPrinter(out io.Writer) *BannerPrinter {
	return &BannerPrinter{
		Out:      out,
		Terminal: stdoutTerminal{},
	}
}

// padWidth returns the per-side padding for a label of length labelLen in a
// terminal of the given width. Integer division, so odd leftover width
// leaves the printed line one character short. Existing behavior; keep the
// rounding as is.
func padWidth(width, labelLen int) int {
	return (width - labelLen - 2) / 2
}

// Print writes the label framed by fill characters and blank lines. When
// output is not a terminal, or the width query is unavailable or absurd,
// the bare label is printed instead with no error.
func (b *BannerPrinter) Print(label string) error {
	if label == "" {
		return fmt.Errorf("banner: label must not be empty")
	}
	if strings.ContainsAny(label, "\r\n") {
		return fmt.Errorf("banner: label %q must be a single line", label)
	}

	if b.Terminal == nil || !b.Terminal.IsTerminal() {
		fmt.Fprintln(b.Out, label)
		return nil
	}

	width, err := b.Terminal.Width()
	if err != nil || width <= 0 {
		fmt.Fprintln(b.Out, label)
		return nil
	}

	pad := padWidth(width, len(label))
	if pad < 1 {
		fmt.Fprintln(b.Out, label)
		return nil
	}

	fill := strings.Repeat(bannerFill, pad)
	fmt.Fprintf(b.Out, "\n%s %s %s\n\n", fill, colorBanner(label), fill)
	return nil
}
