package testutil

// FixedTerminal is a bearprof.TerminalSizer with a fixed width for testing.
type FixedTerminal struct {
	TTY      bool
	Columns  int
	WidthErr error
}

func (t FixedTerminal) IsTerminal() bool {
	return t.TTY
}

func (t FixedTerminal) Width() (int, error) {
	return t.Columns, t.WidthErr
}
