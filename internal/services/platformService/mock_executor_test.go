package platformservice

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// mockExecutor answers commands by their full command line, e.g.
// "sh -c sysctl -n machdep.cpu.core_count".
type mockExecutor struct {
	mu      sync.Mutex
	outputs map[string]string
	errors  map[string]error
	calls   []string
}

func newMockExecutor() *mockExecutor {
	return &mockExecutor{
		outputs: make(map[string]string),
		errors:  make(map[string]error),
	}
}

func commandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (m *mockExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	line := commandLine(name, args...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, line)

	if err, ok := m.errors[line]; ok {
		return "", err
	}
	if out, ok := m.outputs[line]; ok {
		return out, nil
	}
	return "", fmt.Errorf("command %q not configured in mock", line)
}

func (m *mockExecutor) setOutput(line, output string) {
	m.outputs[line] = output
}

func (m *mockExecutor) setError(line string, err error) {
	m.errors[line] = err
}
