package platformservice

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrUnsupportedPlatform is returned by NewBackend for an OS with no backend.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// CommandError records a failed external command.
// Launch is set when the process never started (binary missing, fork
// failure); otherwise the process ran and exited non-zero.
type CommandError struct {
	Command string // command name, e.g. "powershell", "sh"
	Launch  bool
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Launch {
		return fmt.Sprintf("command %q could not start: %v", e.Command, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("command %q failed: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Transient reports whether retrying the command could succeed: the process
// failed to launch for a reason other than the binary being absent.
func (e *CommandError) Transient() bool {
	return e.Launch && !errors.Is(e.Err, exec.ErrNotFound)
}
