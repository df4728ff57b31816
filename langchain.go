package fmtr

import (
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// ToolsContent marshals langchaingo tool definitions into the JSON array
// consumed by [ToolFormatter.Apply].
//
// Parameters declared as Go maps do not carry key order; when the rendered
// property order matters, build the content with the tooldef package
// instead.
func ToolsContent(tools []llms.Tool) (string, error) {
	type def struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Parameters  any    `json:"parameters"`
	}

	defs := make([]def, 0, len(tools))
	for i, tool := range tools {
		if tool.Function == nil {
			return "", fmt.Errorf("%w: tool %d has no function definition", ErrBadToolSchema, i)
		}
		defs = append(defs, def{
			Name:        tool.Function.Name,
			Description: tool.Function.Description,
			Parameters:  tool.Function.Parameters,
		})
	}

	out, err := json.Marshal(defs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadToolSchema, err)
	}
	return string(out), nil
}

// LangChainToolCalls converts extracted calls into llms.ToolCall values,
// assigning sequential identifiers.
func LangChainToolCalls(calls []ExtractedCall) []llms.ToolCall {
	out := make([]llms.ToolCall, 0, len(calls))
	for i, call := range calls {
		out = append(out, llms.ToolCall{
			ID:   fmt.Sprintf("call_%d", i+1),
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	return out
}
