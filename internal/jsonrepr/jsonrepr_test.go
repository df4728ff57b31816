package jsonrepr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "object with separators normalized",
			raw:      `{"foo":"bar","size":10}`,
			expected: `{"foo": "bar", "size": 10}`,
		},
		{
			name:     "whitespace collapsed",
			raw:      "{\n  \"a\" : 1 ,\n  \"b\" : [ 1 , 2 ]\n}",
			expected: `{"a": 1, "b": [1, 2]}`,
		},
		{
			name:     "key order preserved",
			raw:      `{"z": 1, "a": 2, "m": 3}`,
			expected: `{"z": 1, "a": 2, "m": 3}`,
		},
		{
			name:     "number literals pass through",
			raw:      `[1.50, 1e3, -0.0, 12345678901234567890]`,
			expected: `[1.50, 1e3, -0.0, 12345678901234567890]`,
		},
		{
			name:     "nested containers",
			raw:      `{"a":{"b":[{"c":null},true]}}`,
			expected: `{"a": {"b": [{"c": null}, true]}}`,
		},
		{
			name:     "empty containers",
			raw:      `{"a":{},"b":[]}`,
			expected: `{"a": {}, "b": []}`,
		},
		{
			name:     "top-level scalar",
			raw:      `"hi"`,
			expected: `"hi"`,
		},
		{
			name:     "unicode unescaped",
			raw:      `{"msg":"你好"}`,
			expected: `{"msg": "你好"}`,
		},
		{
			name:     "control characters escaped",
			raw:      `{"s":"a\nb\tc"}`,
			expected: `{"s": "a\nb\tc"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compact([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCompact_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace only", raw: "  \n"},
		{name: "truncated", raw: `{"a":`},
		{name: "trailing garbage", raw: `{"a": 1} extra`},
		{name: "two values", raw: `{} {}`},
		{name: "not json", raw: "hello"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compact([]byte(tc.raw))
			assert.Error(t, err)
		})
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name: "flat object",
			raw:  `{"foo":"bar","size":10}`,
			expected: "{\n" +
				"    \"foo\": \"bar\",\n" +
				"    \"size\": 10\n" +
				"}",
		},
		{
			name: "nested object and array",
			raw:  `{"a":{"b":[1,2]},"c":true}`,
			expected: "{\n" +
				"    \"a\": {\n" +
				"        \"b\": [\n" +
				"            1,\n" +
				"            2\n" +
				"        ]\n" +
				"    },\n" +
				"    \"c\": true\n" +
				"}",
		},
		{
			name:     "empty object stays inline",
			raw:      `{}`,
			expected: "{}",
		},
		{
			name: "empty containers as values",
			raw:  `{"a":{},"b":[]}`,
			expected: "{\n" +
				"    \"a\": {},\n" +
				"    \"b\": []\n" +
				"}",
		},
		{
			name:     "scalar",
			raw:      `42`,
			expected: "42",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Indent([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMapRepr(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name: "schema-shaped mapping",
			raw:  `{"type":"object","properties":{"foo":{"type":"string"}},"required":["foo"]}`,
			expected: "{'type': 'object', 'properties': {'foo': {'type': 'string'}}, " +
				"'required': ['foo']}",
		},
		{
			name:     "keywords",
			raw:      `{"a": true, "b": false, "c": null}`,
			expected: "{'a': True, 'b': False, 'c': None}",
		},
		{
			name:     "numbers",
			raw:      `{"i": 10, "f": 0.5}`,
			expected: "{'i': 10, 'f': 0.5}",
		},
		{
			name:     "string containing a single quote",
			raw:      `{"s": "it's"}`,
			expected: `{'s': "it's"}`,
		},
		{
			name:     "string containing both quotes",
			raw:      `{"s": "a'b\"c"}`,
			expected: `{'s': 'a\'b"c'}`,
		},
		{
			name:     "escapes",
			raw:      `{"s": "a\nb"}`,
			expected: `{'s': 'a\nb'}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MapRepr([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, Quote("plain"))
	assert.Equal(t, `"a\"b\\c"`, Quote(`a"b\c`))
	assert.Equal(t, `"你好"`, Quote("你好"))
	assert.Equal(t, `"tab\there"`, Quote("tab\there"))
}

func TestQuoteSingle(t *testing.T) {
	assert.Equal(t, `'plain'`, QuoteSingle("plain"))
	assert.Equal(t, `"it's"`, QuoteSingle("it's"))
	assert.Equal(t, `'say "hi"'`, QuoteSingle(`say "hi"`))
}
