package fmtr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// functionCall is the decoded shape of one call in FunctionFormatter
// content. Arguments stays raw so key order and number literals survive
// re-serialization.
type functionCall struct {
	Name      string
	Arguments json.RawMessage
}

// FunctionFormatter renders JSON-encoded function calls using the
// render-call convention of its configured format.
//
//	f, err := fmtr.NewFunctionFormatter(fmtr.FormatDefault)
//	out, err := f.Apply(`{"name": "search", "arguments": {"query": "weather"}}`, nil)
//	// out == []string{"Action: search\nAction Input: {\"query\": \"weather\"}\n"}
type FunctionFormatter struct {
	format toolFormat
	slots  []Slot
}

// NewFunctionFormatter resolves the format identifier against the closed
// format table; unknown identifiers fail here with ErrUnknownFormat.
//
// Optional surrounding slots wrap the rendered output: when present, the
// rendered calls are joined and substituted for the {{content}} placeholder,
// yielding one string per slot. With no slots, Apply yields one string per
// call.
func NewFunctionFormatter(format string, slots ...string) (*FunctionFormatter, error) {
	f, err := resolveToolFormat(format)
	if err != nil {
		return nil, err
	}
	return &FunctionFormatter{format: f, slots: compileSlots(slots)}, nil
}

// Apply decodes content as one {name, arguments} object or an array of
// them, and renders each call in input order. Content that is not valid
// JSON, or does not match that shape, fails with ErrMalformedCall.
func (f *FunctionFormatter) Apply(content string, vars map[string]string) ([]string, error) {
	calls, err := decodeFunctionCalls(content)
	if err != nil {
		return nil, err
	}

	rendered := make([]string, 0, len(calls))
	for _, call := range calls {
		text, err := f.format.renderCall(call.Name, call.Arguments)
		if err != nil {
			return nil, fmt.Errorf("%w: call %q: %v", ErrMalformedCall, call.Name, err)
		}
		rendered = append(rendered, text)
	}
	if len(f.slots) == 0 {
		return rendered, nil
	}

	merged := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		merged[k] = v
	}
	merged["content"] = strings.Join(rendered, "")

	out := make([]string, len(f.slots))
	for i, slot := range f.slots {
		s, err := slot.render(merged)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func decodeFunctionCalls(content string) ([]functionCall, error) {
	type rawCall struct {
		Name      *string         `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	trimmed := strings.TrimSpace(content)
	var raws []rawCall
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCall, err)
		}
	} else {
		var single rawCall
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCall, err)
		}
		raws = append(raws, single)
	}

	calls := make([]functionCall, 0, len(raws))
	for i, raw := range raws {
		if raw.Name == nil {
			return nil, fmt.Errorf("%w: call %d missing name", ErrMalformedCall, i)
		}
		if raw.Arguments == nil {
			return nil, fmt.Errorf("%w: call %d missing arguments", ErrMalformedCall, i)
		}
		calls = append(calls, functionCall{Name: *raw.Name, Arguments: raw.Arguments})
	}
	return calls, nil
}
