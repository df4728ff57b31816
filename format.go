package fmtr

import (
	"encoding/json"
	"fmt"
)

// Supported tool format identifiers.
const (
	FormatDefault = "default"
	FormatGLM4    = "glm4"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// ExtractedCall is a tool invocation recovered from model output.
//
// Arguments is kept as JSON text rather than a parsed structure, exactly as
// it appeared or was re-serialized, so downstream callers can re-parse it
// with their own tooling.
type ExtractedCall struct {
	Name      string
	Arguments string
}

// toolFormat is one rendering/extraction convention. Each variant provides
// the three operations the formatter family dispatches to: a whole-batch
// tool description, a per-call renderer, and the inverse extractor.
//
// extract never fails: unrecognizable text yields no calls, and a candidate
// that fails to parse is skipped. Malformed model output is an expected,
// common case, unlike malformed caller-supplied content.
type toolFormat interface {
	describeTools(tools []ToolDefinition) (string, error)
	renderCall(name string, args json.RawMessage) (string, error)
	extract(text string) []ExtractedCall
}

// The format table is closed and read-only: populated here, resolved once at
// formatter construction, never mutated at runtime.
var toolFormats = map[string]toolFormat{
	FormatDefault: defaultFormat{},
	FormatGLM4:    glm4Format{},
	FormatJSON:    jsonFormat{},
	FormatYAML:    yamlFormat{},
}

func resolveToolFormat(name string) (toolFormat, error) {
	f, ok := toolFormats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// ToolFormatNames returns the supported tool format identifiers.
func ToolFormatNames() []string {
	return []string{FormatDefault, FormatGLM4, FormatJSON, FormatYAML}
}
