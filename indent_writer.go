package bearprof

import (
	"fmt"
	"io"
	"strings"
)

// IndentWriter provides indented writing with configurable indent levels.
// It wraps an io.Writer and automatically prepends the current indent
// to each line written.
type IndentWriter struct {
	w      io.Writer
	indent string
	level  int
}

// NewIndentWriter creates a new IndentWriter with the given writer and indent
// string. The indent string is repeated for each indent level.
func NewIndentWriter(w io.Writer, indent string) *IndentWriter {
	return &IndentWriter{
		w:      w,
		indent: indent,
		level:  0,
	}
}

// Indent increases the indent level by 1 and returns the writer for chaining.
func (iw *IndentWriter) Indent() *IndentWriter {
	iw.level++
	return iw
}

// Dedent decreases the indent level by 1 and returns the writer for chaining.
// The level cannot go below 0.
func (iw *IndentWriter) Dedent() *IndentWriter {
	if iw.level > 0 {
		iw.level--
	}
	return iw
}

// prefix returns the current indent prefix string.
func (iw *IndentWriter) prefix() string {
	return strings.Repeat(iw.indent, iw.level)
}

// Writef writes a formatted string with the current indent prefix.
// A newline is automatically appended.
func (iw *IndentWriter) Writef(format string, args ...any) {
	fmt.Fprintf(iw.w, iw.prefix()+format+"\n", args...)
}

// Writeln writes a string with the current indent prefix.
// A newline is automatically appended.
func (iw *IndentWriter) Writeln(s string) {
	fmt.Fprintln(iw.w, iw.prefix()+s)
}

// WriteBlock writes a multi-line block, indenting each line.
func (iw *IndentWriter) WriteBlock(block string) {
	for _, line := range strings.Split(block, "\n") {
		iw.Writeln(line)
	}
}

// Blankln writes a blank line (no indent prefix).
func (iw *IndentWriter) Blankln() {
	fmt.Fprintln(iw.w)
}
