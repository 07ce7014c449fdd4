package spinner

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// StartSpinner starts a terminal spinner on stderr with the given message,
// keeping stdout clean for the report. Returns a stop function that halts
// and clears the spinner. The spinner stays silent when stderr is not a
// terminal, whatever stdout is.
//
// Usage:
//
//	stop := spinner.StartSpinner("Collecting hardware inventory")
//	inv, err := collector.Collect(ctx)
//	stop()
func StartSpinner(message string) func() {
	s := newSpinner(message)
	s.Start()

	return func() {
		s.Stop()
	}
}

// newSpinner writes to stderr and checks stderr, not stdout, for a tty.
func newSpinner(message string) *spinner.Spinner {
	// CharSets[14] is the braille dots set.
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(os.Stderr))
	s.Suffix = " " + message
	return s
}
