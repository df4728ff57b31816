package fmtr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLFormat_RenderCall(t *testing.T) {
	f, err := NewFunctionFormatter(FormatYAML)
	require.NoError(t, err)

	out, err := f.Apply(`{"name": "search", "arguments": {"query": "weather", "limit": 5}}`, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tool: search\nargs:\n  query: weather\n  limit: 5\n"}, out)
}

func TestYAMLFormat_RenderCallQuotesAmbiguousStrings(t *testing.T) {
	f, err := NewFunctionFormatter(FormatYAML)
	require.NoError(t, err)

	// "10" is a string in the arguments; it must not come back as a number.
	out, err := f.Apply(`{"name": "t", "arguments": {"id": "10"}}`, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "tool: t\nargs:\n  id: \"10\"\n", out[0])

	tf, err := NewToolFormatter(FormatYAML)
	require.NoError(t, err)
	calls, ok := tf.Extract(out[0])
	require.True(t, ok)
	assert.Equal(t, []ExtractedCall{{Name: "t", Arguments: `{"id": "10"}`}}, calls)
}

func TestYAMLFormat_Extract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []ExtractedCall
	}{
		{
			name: "bare document",
			text: "tool: search\nargs:\n  query: weather\n",
			expected: []ExtractedCall{
				{Name: "search", Arguments: `{"query": "weather"}`},
			},
		},
		{
			name: "fenced document with language tag",
			text: "```yaml\ntool: search\nargs:\n  query: weather\n```",
			expected: []ExtractedCall{
				{Name: "search", Arguments: `{"query": "weather"}`},
			},
		},
		{
			name: "sequence of calls",
			text: "- tool: a\n  args:\n    x: 1\n- tool: b\n  args:\n    y: 2\n",
			expected: []ExtractedCall{
				{Name: "a", Arguments: `{"x": 1}`},
				{Name: "b", Arguments: `{"y": 2}`},
			},
		},
		{
			name:     "plain prose",
			text:     "The weather is sunny today.",
			expected: nil,
		},
		{
			name:     "mapping without tool key",
			text:     "action: search\nargs:\n  query: weather\n",
			expected: nil,
		},
		{
			name:     "mapping without args key",
			text:     "tool: search\n",
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewToolFormatter(FormatYAML)
			require.NoError(t, err)

			calls, ok := f.Extract(tc.text)
			if tc.expected == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.expected, calls)
		})
	}
}

func TestYAMLFormat_Describe(t *testing.T) {
	f, err := NewToolFormatter(FormatYAML)
	require.NoError(t, err)

	out, err := f.Apply(testToolsJSON, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Contains(t, out[0], "You have access to the following tools:\n")
	assert.Contains(t, out[0], "- test_tool: tool_desc\n")
	assert.Contains(t, out[0], "  parameters:\n")
	assert.Contains(t, out[0], "    type: object\n")
	assert.Contains(t, out[0], "tool: tool_name\n")
}
