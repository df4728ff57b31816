package fmtr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prompteng/fmtr/internal/tt"
)

func TestNewFunctionFormatter_UnknownFormat(t *testing.T) {
	_, err := NewFunctionFormatter("nope")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFunctionFormatter_Default(t *testing.T) {
	f, err := NewFunctionFormatter(FormatDefault)
	require.NoError(t, err)

	out, err := f.Apply(`{"name": "tool_name", "arguments": {"foo": "bar", "size": 10}}`, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Action: tool_name\nAction Input: {\"foo\": \"bar\", \"size\": 10}\n",
	}, out)
}

func TestFunctionFormatter_DefaultMultiCall(t *testing.T) {
	f, err := NewFunctionFormatter(FormatDefault)
	require.NoError(t, err)

	content := `[` +
		`{"name": "tool_name", "arguments": {"foo": "bar", "size": 10}},` +
		`{"name": "tool_name", "arguments": {"foo": "bar", "size": 10}}` +
		`]`
	out, err := f.Apply(content, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Action: tool_name\nAction Input: {\"foo\": \"bar\", \"size\": 10}\n",
		"Action: tool_name\nAction Input: {\"foo\": \"bar\", \"size\": 10}\n",
	}, out)
}

func TestFunctionFormatter_GLM4(t *testing.T) {
	f, err := NewFunctionFormatter(FormatGLM4)
	require.NoError(t, err)

	out, err := f.Apply(`{"name": "tool_name", "arguments": {"foo": "bar", "size": 10}}`, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tool_name\n{\"foo\": \"bar\", \"size\": 10}\n"}, out)
}

func TestFunctionFormatter_JSON(t *testing.T) {
	f, err := NewFunctionFormatter(FormatJSON)
	require.NoError(t, err)

	out, err := f.Apply(`[{"name": "tool_name", "arguments": {"foo": "bar", "size": 10}}]`, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)

	// The rendered call is itself valid JSON.
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out[0]), &decoded))

	expected := "{\n" +
		"    \"action\": \"tool_name\",\n" +
		"    \"action_input\": {\n" +
		"        \"foo\": \"bar\",\n" +
		"        \"size\": 10\n" +
		"    }\n" +
		"}"
	tt.AssertTextEqual(t, expected, out[0])
}

func TestFunctionFormatter_JSONComplexArgs(t *testing.T) {
	f, err := NewFunctionFormatter(FormatJSON)
	require.NoError(t, err)

	content := `[{
		"name": "ApplyLineEditTool",
		"arguments": {
			"uri": "file:///root/test.py",
			"edit": {
				"start_line": 281,
				"end_line": 282,
				"new_text": "        test_text1\n        test_text2\n"
			},
			"compute_undo_edits": false,
			"auto_save": true
		}
	}]`
	out, err := f.Apply(content, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out[0]), &decoded))

	expected := "{\n" +
		"    \"action\": \"ApplyLineEditTool\",\n" +
		"    \"action_input\": {\n" +
		"        \"uri\": \"file:///root/test.py\",\n" +
		"        \"edit\": {\n" +
		"            \"start_line\": 281,\n" +
		"            \"end_line\": 282,\n" +
		"            \"new_text\": \"        test_text1\\n        test_text2\\n\"\n" +
		"        },\n" +
		"        \"compute_undo_edits\": false,\n" +
		"        \"auto_save\": true\n" +
		"    }\n" +
		"}"
	tt.AssertTextEqual(t, expected, out[0])
}

func TestFunctionFormatter_ArgumentFidelity(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "nested structures and key order",
			content:  `{"name": "t", "arguments": {"z": 1, "a": {"y": [true, null], "b": "x"}}}`,
			expected: "Action: t\nAction Input: {\"z\": 1, \"a\": {\"y\": [true, null], \"b\": \"x\"}}\n",
		},
		{
			name:     "number literals untouched",
			content:  `{"name": "t", "arguments": {"f": 1.50, "e": 1e3, "i": 12345678901234567890}}`,
			expected: "Action: t\nAction Input: {\"f\": 1.50, \"e\": 1e3, \"i\": 12345678901234567890}\n",
		},
		{
			name:     "non-object arguments",
			content:  `{"name": "t", "arguments": [1, "two", false]}`,
			expected: "Action: t\nAction Input: [1, \"two\", false]\n",
		},
		{
			name:     "unicode left unescaped",
			content:  `{"name": "t", "arguments": {"msg": "你好"}}`,
			expected: "Action: t\nAction Input: {\"msg\": \"你好\"}\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFunctionFormatter(FormatDefault)
			require.NoError(t, err)
			out, err := f.Apply(tc.content, nil)
			require.NoError(t, err)
			assert.Equal(t, []string{tc.expected}, out)
		})
	}
}

func TestFunctionFormatter_Slots(t *testing.T) {
	f, err := NewFunctionFormatter(FormatDefault, "<tool>\n", "{{content}}</tool>")
	require.NoError(t, err)

	out, err := f.Apply(`{"name": "t", "arguments": {}}`, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"<tool>\n", "Action: t\nAction Input: {}\n</tool>"}, out)
}

func TestFunctionFormatter_MalformedContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not JSON", content: "Action: nope"},
		{name: "scalar", content: `"hello"`},
		{name: "array of scalars", content: `[1, 2]`},
		{name: "missing name", content: `{"arguments": {}}`},
		{name: "missing arguments", content: `{"name": "t"}`},
		{name: "missing name in array element", content: `[{"name": "a", "arguments": {}}, {"arguments": {}}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFunctionFormatter(FormatDefault)
			require.NoError(t, err)
			_, err = f.Apply(tc.content, nil)
			require.ErrorIs(t, err, ErrMalformedCall)
		})
	}
}
