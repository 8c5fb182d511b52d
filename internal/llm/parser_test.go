package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no wrapper", input: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", input: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", input: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "leading whitespace", input: "  ```json\n{\"a\": 1}\n```  ", want: `{"a": 1}`},
		{name: "unterminated fence", input: "```json\n{\"a\": 1}", want: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanMarkdownWrapper(tt.input))
		})
	}
}

func TestDecodeObject(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		obj, err := DecodeObject(`{"content": "hello", "content_type": "Text"}`)
		require.NoError(t, err)
		assert.Equal(t, "hello", obj["content"])
	})

	t.Run("fenced object", func(t *testing.T) {
		obj, err := DecodeObject("```json\n{\"score\": 7}\n```")
		require.NoError(t, err)
		assert.Equal(t, 7.0, obj["score"])
	})

	t.Run("list unwraps to first element", func(t *testing.T) {
		obj, err := DecodeObject(`[{"primary_theme": "agents"}, {"primary_theme": "other"}]`)
		require.NoError(t, err)
		assert.Equal(t, "agents", obj["primary_theme"])
	})

	t.Run("empty list fails", func(t *testing.T) {
		_, err := DecodeObject(`[]`)
		assert.Error(t, err)
	})

	t.Run("scalar fails", func(t *testing.T) {
		_, err := DecodeObject(`"just a string"`)
		assert.Error(t, err)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		_, err := DecodeObject(`{"unclosed": `)
		assert.Error(t, err)
	})
}

func TestFieldHelpers(t *testing.T) {
	obj := map[string]any{
		"name":       "AI Assistant",
		"confidence": 0.92,
		"count":      "3.5",
		"tags":       []any{"go", "llm", 42},
		"stringy":    `["a", "b"]`,
		"single":     "solo",
	}

	assert.Equal(t, "AI Assistant", String(obj, "name"))
	assert.Equal(t, "", String(obj, "missing"))

	assert.InDelta(t, 0.92, Float(obj, "confidence"), 1e-9)
	assert.InDelta(t, 3.5, Float(obj, "count"), 1e-9)
	assert.Zero(t, Float(obj, "missing"))

	assert.Equal(t, []string{"go", "llm"}, StringList(obj, "tags"))
	assert.Equal(t, []string{"a", "b"}, StringList(obj, "stringy"))
	assert.Equal(t, []string{"solo"}, StringList(obj, "single"))
	assert.Nil(t, StringList(obj, "missing"))
}
