package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindJSONCandidates(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		got := findJSONCandidates(`{"status": "REJECTED"}`)
		require.Len(t, got, 1)
		assert.Equal(t, `{"status": "REJECTED"}`, got[0])
	})

	t.Run("object inside code fence", func(t *testing.T) {
		got := findJSONCandidates("```json\n{\"a\": 1}\n```")
		require.Len(t, got, 1)
		assert.Equal(t, `{"a": 1}`, got[0])
	})

	t.Run("nested braces stay in one candidate", func(t *testing.T) {
		got := findJSONCandidates(`prefix {"outer": {"inner": 2}} suffix`)
		require.Len(t, got, 1)
		assert.Equal(t, `{"outer": {"inner": 2}}`, got[0])
	})

	t.Run("braces inside strings are ignored", func(t *testing.T) {
		got := findJSONCandidates(`{"reason": "use {curly} braces \" here"}`)
		require.Len(t, got, 1)
	})

	t.Run("multiple top-level objects", func(t *testing.T) {
		got := findJSONCandidates(`{"a": 1} and {"b": 2}`)
		require.Len(t, got, 2)
		assert.Equal(t, `{"b": 2}`, got[1])
	})

	t.Run("no object", func(t *testing.T) {
		assert.Empty(t, findJSONCandidates("just some text"))
		assert.Empty(t, findJSONCandidates("unbalanced {"))
	})
}
