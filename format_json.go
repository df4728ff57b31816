package fmtr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prompteng/fmtr/internal/jsonrepr"
)

// jsonFormat renders calls as pretty-printed {"action", "action_input"}
// objects and extracts them back out of arbitrary model text with a
// balanced-brace scan.
type jsonFormat struct{}

func (jsonFormat) describeTools(tools []ToolDefinition) (string, error) {
	var sb strings.Builder
	for _, tool := range tools {
		// The mapping literal here is a wire contract consumed verbatim
		// downstream; it must not be normalized to standard JSON.
		params, err := jsonrepr.MapRepr(tool.Parameters.raw)
		if err != nil {
			return "", fmt.Errorf("%w: tool %q: %v", ErrBadToolSchema, tool.Name, err)
		}
		fmt.Fprintf(&sb, "\n%s: %s\ntool input params json format(JsonSchema): %s\n",
			tool.Name, tool.Description, params)
	}
	return sb.String(), nil
}

func (jsonFormat) renderCall(name string, args json.RawMessage) (string, error) {
	doc := fmt.Sprintf(`{"action":%s,"action_input":%s}`, jsonrepr.Quote(name), args)
	return jsonrepr.Indent([]byte(doc))
}

// extract scans the whole text for candidate objects. Candidates may be
// wrapped in triple-backtick fences, intermixed with prose, and may contain
// arbitrarily nested braces inside action_input, so each candidate span is
// found with a depth-counter walk rather than pattern matching.
//
// A candidate that fails to parse, or parses without both the action and
// action_input keys, is discarded and the scan resumes at the next brace.
// Zero successes leave the input as plain text.
func (jsonFormat) extract(text string) []ExtractedCall {
	var calls []ExtractedCall
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		end, ok := matchingBrace(text, i)
		if !ok {
			continue
		}

		var probe struct {
			Action      *string         `json:"action"`
			ActionInput json.RawMessage `json:"action_input"`
		}
		if err := json.Unmarshal([]byte(text[i:end+1]), &probe); err != nil ||
			probe.Action == nil || probe.ActionInput == nil {
			continue
		}
		args, err := jsonrepr.Compact(probe.ActionInput)
		if err != nil {
			continue
		}

		calls = append(calls, ExtractedCall{Name: *probe.Action, Arguments: args})
		i = end // resume after the candidate span; fence backticks fall through the scan
	}
	return calls
}

// matchingBrace returns the index of the brace closing the one at start.
// Depth is an integer counter, not recursion, so nesting is bounded only by
// input length.
func matchingBrace(text string, start int) (int, bool) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
