package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopegate/internal/state"
)

const readyJSON = `{
	"status": "READY_FOR_RESEARCH",
	"buyer_entity": "Salesforce",
	"buyer_domain": "salesforce.com",
	"seller_entity": "ZoomInfo",
	"research_focus": "Sales opportunity for data solutions"
}`

func newTestClassifier(llm *mockLLM, maxAttempts int) *Classifier {
	c := NewClassifier(func() LLMClient { return llm }, maxAttempts, nil)
	c.backoff = 0
	return c
}

func TestClassify(t *testing.T) {
	history := []state.Message{{Role: state.RoleUser, Content: "I need a report on Salesforce. I am from ZoomInfo."}}

	t.Run("valid result on first attempt", func(t *testing.T) {
		llm := &mockLLM{script: []mockStep{{response: readyJSON}}}
		c := newTestClassifier(llm, 3)

		cls, err := c.Classify(context.Background(), "instruction", history)
		require.NoError(t, err)
		assert.Equal(t, state.StatusReadyForResearch, cls.Status)
		assert.Equal(t, "Salesforce", cls.BuyerEntity)
		assert.Equal(t, "salesforce.com", cls.BuyerDomain)
		assert.Equal(t, 1, llm.callCount())
		assert.Equal(t, "instruction", llm.lastSys)
	})

	t.Run("invalid result is retried once then accepted", func(t *testing.T) {
		missingDomain := `{"status": "READY_FOR_RESEARCH", "buyer_entity": "Salesforce"}`
		llm := &mockLLM{script: []mockStep{{response: missingDomain}, {response: readyJSON}}}
		c := newTestClassifier(llm, 3)

		cls, err := c.Classify(context.Background(), "instruction", history)
		require.NoError(t, err)
		assert.Equal(t, state.StatusReadyForResearch, cls.Status)
		assert.Equal(t, 2, llm.callCount())
	})

	t.Run("validation exhaustion returns ValidationError", func(t *testing.T) {
		missingDomain := `{"status": "READY_FOR_RESEARCH", "buyer_entity": "Salesforce"}`
		llm := &mockLLM{script: []mockStep{{response: missingDomain}}}
		c := newTestClassifier(llm, 3)

		cls, err := c.Classify(context.Background(), "instruction", history)
		assert.Nil(t, cls)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, 3, vErr.Attempts)
		assert.Equal(t, 3, llm.callCount())
	})

	t.Run("two timeouts within budget then success", func(t *testing.T) {
		llm := &mockLLM{script: []mockStep{
			{err: timeoutErr{}},
			{err: timeoutErr{}},
			{response: readyJSON},
		}}
		c := newTestClassifier(llm, 3)

		cls, err := c.Classify(context.Background(), "instruction", history)
		require.NoError(t, err)
		assert.Equal(t, state.StatusReadyForResearch, cls.Status)
		assert.Equal(t, 3, llm.callCount())
	})

	t.Run("timeout exhaustion returns TimeoutError", func(t *testing.T) {
		llm := &mockLLM{script: []mockStep{{err: timeoutErr{}}}}
		c := newTestClassifier(llm, 2)

		_, err := c.Classify(context.Background(), "instruction", history)
		var tErr *TimeoutError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, 2, tErr.Attempts)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		llm := &mockLLM{script: []mockStep{{err: ctx.Err()}}}
		c := newTestClassifier(llm, 5)

		_, err := c.Classify(ctx, "instruction", history)
		require.Error(t, err)
		assert.Equal(t, 1, llm.callCount())
	})

	t.Run("json embedded in prose is recovered", func(t *testing.T) {
		wrapped := "Here is my analysis:\n```json\n" + readyJSON + "\n```\nLet me know."
		llm := &mockLLM{script: []mockStep{{response: wrapped}}}
		c := newTestClassifier(llm, 3)

		cls, err := c.Classify(context.Background(), "instruction", history)
		require.NoError(t, err)
		assert.Equal(t, state.StatusReadyForResearch, cls.Status)
		assert.Equal(t, 1, llm.callCount())
	})

	t.Run("history is rendered with role tags", func(t *testing.T) {
		llm := &mockLLM{script: []mockStep{{response: readyJSON}}}
		c := newTestClassifier(llm, 1)

		full := []state.Message{
			{Role: state.RoleUser, Content: "Tell me about Delta."},
			{Role: state.RoleAgent, Content: "Which Delta?"},
			{Role: state.RoleUser, Content: "Delta Airlines, delta.com"},
		}
		_, err := c.Classify(context.Background(), "instruction", full)
		require.NoError(t, err)
		assert.Contains(t, llm.lastUsr, "User: Tell me about Delta.")
		assert.Contains(t, llm.lastUsr, "Assistant: Which Delta?")
		assert.Contains(t, llm.lastUsr, "User: Delta Airlines, delta.com")
	})
}

func TestParseClassification(t *testing.T) {
	t.Run("empty response fails", func(t *testing.T) {
		_, err := parseClassification("   ")
		assert.Error(t, err)
	})

	t.Run("prose without json fails", func(t *testing.T) {
		_, err := parseClassification("I could not produce a classification.")
		assert.Error(t, err)
	})

	t.Run("first candidate without status is skipped", func(t *testing.T) {
		raw := `{"note": "ignored"} {"status": "REJECTED", "message": "no"}`
		cls, err := parseClassification(raw)
		require.NoError(t, err)
		assert.Equal(t, state.StatusRejected, cls.Status)
	})
}
