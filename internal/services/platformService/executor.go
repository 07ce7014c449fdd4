package platformservice

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CommandExecutor runs one external command and returns its stdout.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

// ShellExecutor runs commands on the local host.
type ShellExecutor struct {
	// Timeout bounds a single attempt. Zero means no timeout.
	Timeout time.Duration
	// Retries is how many extra attempts a transient launch failure gets.
	Retries int
	// RetryDelay grows linearly with each attempt.
	RetryDelay time.Duration
	Logger     *slog.Logger

	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewShellExecutor returns an executor with no timeout and the given retry budget.
func NewShellExecutor(timeout time.Duration, retries int, logger *slog.Logger) *ShellExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellExecutor{
		Timeout:    timeout,
		Retries:    retries,
		RetryDelay: 200 * time.Millisecond,
		Logger:     logger,
		run:        runCommand,
	}
}

// Execute runs the command, retrying transient launch failures. Exit
// failures are returned straight away.
func (e *ShellExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	run := e.run
	if run == nil {
		run = runCommand
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for attempt := 0; ; attempt++ {
		attemptCtx, cancel := e.attemptContext(ctx)
		start := time.Now()
		out, err := run(attemptCtx, name, args...)
		cancel()

		if err == nil {
			logger.Debug("command finished", "command", name, "duration", time.Since(start), "bytes", len(out))
			return decodeOutput(out), nil
		}

		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) || !cmdErr.Transient() || attempt >= e.Retries {
			return "", err
		}

		delay := e.RetryDelay * time.Duration(attempt+1)
		logger.Warn("command failed to start, retrying",
			"command", name,
			"attempt", attempt+1,
			"delay", delay,
			"error", cmdErr.Err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (e *ShellExecutor) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Timeout > 0 {
		return context.WithTimeout(ctx, e.Timeout)
	}
	return context.WithCancel(ctx)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &CommandError{
			Command: name,
			Stderr:  strings.TrimSpace(string(exitErr.Stderr)),
			Err:     err,
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, &CommandError{Command: name, Err: ctxErr}
	}
	return nil, &CommandError{Command: name, Launch: true, Err: err}
}

// decodeOutput turns raw stdout into a string. Invalid UTF-8 is replaced
// with U+FFFD and a leading byte order mark is dropped; PowerShell emits
// one on some hosts.
func decodeOutput(b []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
