package bearprof

// FormatResult holds formatted output strings. Each command's result type
// exposes a Format method taking its own option struct and returning one of
// these; the CLI layer decides which stream each field goes to.
type FormatResult struct {
	Stdout string
	Stderr string
}
