package prompt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClarifyInstructions(t *testing.T) {
	got := ClarifyInstructions(time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC))

	assert.NotContains(t, got, "{date}")
	assert.Contains(t, got, "Tue Sep 1, 2026")
	assert.Contains(t, got, "Clarification Analyst")
	assert.Contains(t, got, `"status": "CLARIFICATION_NEEDED"`)
	assert.Contains(t, got, `"status": "READY_FOR_RESEARCH"`)
	assert.Contains(t, got, `"status": "REJECTED"`)
}
