package clarify

import (
	"context"

	"scopegate/internal/state"
)

// mockClassifier returns a fixed classification or error and records
// what it was asked.
type mockClassifier struct {
	result *state.Classification
	err    error

	calls           int
	lastInstruction string
	lastHistory     []state.Message
}

func (m *mockClassifier) Classify(_ context.Context, instruction string, history []state.Message) (*state.Classification, error) {
	m.calls++
	m.lastInstruction = instruction
	m.lastHistory = history
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}
