package spinner

import (
	"os"
	"testing"
)

func TestSpinnerUsesStderr(t *testing.T) {
	s := newSpinner("Collecting hardware inventory")

	if s.Writer != os.Stderr {
		t.Error("spinner frames are not written to stderr")
	}
	if s.WriterFile != os.Stderr {
		t.Error("terminal check does not look at stderr")
	}
	if s.Suffix != " Collecting hardware inventory" {
		t.Errorf("Suffix = %q", s.Suffix)
	}
}

func TestStartSpinnerStop(t *testing.T) {
	stop := StartSpinner("working")
	stop()
}
