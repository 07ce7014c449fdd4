package platformservice

import (
	"fmt"
	"log/slog"
	"runtime"

	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
	"github.com/redjax/hwsum/internal/services/platformService/capabilities"
)

// Backend is a platform's hardware query implementation.
type Backend interface {
	inventoryservice.Backend

	// Requirements lists the binaries the backend runs.
	Requirements() []string
}

// NewBackend returns the backend for the current OS.
func NewBackend(executor CommandExecutor, logger *slog.Logger) (Backend, error) {
	return NewBackendForOS(runtime.GOOS, executor, logger)
}

// NewBackendForOS returns the backend for goos ("windows", "darwin",
// "linux"). Every backend builds on every host so it can be exercised with
// a fake executor.
func NewBackendForOS(goos string, executor CommandExecutor, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if executor == nil {
		executor = NewShellExecutor(0, 0, logger)
	}

	switch goos {
	case "windows":
		return NewWindowsBackend(executor), nil
	case "darwin":
		return NewDarwinBackend(executor), nil
	case "linux":
		return NewLinuxBackend(executor, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// MissingRequirements returns the required binaries not found on PATH.
func MissingRequirements(b Backend) []string {
	var missing []string
	for _, bin := range b.Requirements() {
		if !capabilities.IsCommandAvailable(bin) {
			missing = append(missing, bin)
		}
	}
	return missing
}
