package fmtr

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/prompteng/fmtr/internal/jsonrepr"
)

// defaultFormat renders ReAct-style "Action / Action Input" text.
type defaultFormat struct{}

const defaultToolPreamble = "You have access to the following tools:\n"

const defaultToolUsage = "Use the following format if using a tool:\n" +
	"```\n" +
	"Action: tool name (one of [%s])\n" +
	"Action Input: the input to the tool, in a JSON format representing the kwargs " +
	"(e.g. ```{\"input\": \"hello world\", \"num_beams\": 5}```)\n" +
	"```\n"

func (defaultFormat) describeTools(tools []ToolDefinition) (string, error) {
	var sb strings.Builder
	sb.WriteString(defaultToolPreamble)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
		fmt.Fprintf(&sb, "> Tool Name: %s\nTool Description: %s\nTool Args:\n",
			tool.Name, tool.Description)
		for _, prop := range tool.Parameters.Properties {
			required := ""
			if tool.Parameters.IsRequired(prop.Name) {
				required = ", required"
			}
			enum := ""
			if len(prop.Enum) > 0 {
				enum = fmt.Sprintf(", should be one of [%s]", strings.Join(prop.Enum, ", "))
			}
			items := ""
			if prop.Items != nil {
				items = fmt.Sprintf(", where each item should be %s", prop.Items.Type)
			}
			fmt.Fprintf(&sb, "  - %s (%s%s): %s%s%s\n",
				prop.Name, prop.Type, required, prop.Description, enum, items)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, defaultToolUsage, strings.Join(names, ", "))
	return sb.String(), nil
}

func (defaultFormat) renderCall(name string, args json.RawMessage) (string, error) {
	compact, err := jsonrepr.Compact(args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Action: %s\nAction Input: %s\n", name, compact), nil
}

// The renderer always terminates the payload line with a newline, so both
// the name and the payload are line-anchored. RE2 has no lookahead; anchoring
// to the trailing newline replaces the usual (?=\s*Action:|$) idiom.
var defaultActionRe = regexp.MustCompile(`Action:[ \t]*(.+)\r?\nAction Input:[ \t]*(.+)(?:\r?\n|$)`)

func (defaultFormat) extract(text string) []ExtractedCall {
	matches := defaultActionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	calls := make([]ExtractedCall, 0, len(matches))
	for _, m := range matches {
		calls = append(calls, ExtractedCall{
			Name:      strings.TrimSpace(m[1]),
			Arguments: strings.TrimSpace(m[2]),
		})
	}
	return calls
}
