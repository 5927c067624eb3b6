package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

// WithSpinner runs fn behind a terminal spinner with the given suffix
// message. In quiet mode the spinner is skipped entirely so output stays
// machine-readable.
func WithSpinner(quiet bool, message string, fn func() error) error {
	if quiet {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()

	return fn()
}
