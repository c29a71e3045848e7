package oracle

import (
	"context"
	"sync"
)

// mockLLM replays a scripted sequence of results. Each call consumes
// the next step; the last step repeats once the script runs out.
type mockLLM struct {
	mu      sync.Mutex
	script  []mockStep
	calls   int
	lastSys string
	lastUsr string
}

type mockStep struct {
	response string
	err      error
}

func (m *mockLLM) CompleteWithSchema(_ context.Context, systemPrompt, userPrompt, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.calls
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	m.calls++
	m.lastSys = systemPrompt
	m.lastUsr = userPrompt
	step := m.script[idx]
	return step.response, step.err
}

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// timeoutErr satisfies net.Error the way a timed-out HTTP round trip
// does.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "request failed: deadline exceeded" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }
