package fmtr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prompteng/fmtr/internal/jsonrepr"
)

// glm4Format renders the GLM-4 tool-calling convention: a Chinese system
// preamble with per-tool JSON blocks, and calls written as the bare tool
// name followed by a JSON argument line.
type glm4Format struct{}

const glm4ToolPreamble = "你是一个名为 ChatGLM 的人工智能助手。你是基于智谱AI训练的语言模型 GLM-4 模型开发的，" +
	"你的任务是针对用户的问题和要求提供适当的答复和支持。# 可用工具"

const glm4ToolSuffix = "在调用上述函数时，请使用 Json 格式表示调用的参数。"

func (glm4Format) describeTools(tools []ToolDefinition) (string, error) {
	var sb strings.Builder
	sb.WriteString(glm4ToolPreamble)
	for _, tool := range tools {
		pretty, err := jsonrepr.Indent(tool.raw)
		if err != nil {
			return "", fmt.Errorf("%w: tool %q: %v", ErrBadToolSchema, tool.Name, err)
		}
		fmt.Fprintf(&sb, "\n\n## %s\n\n%s\n%s", tool.Name, pretty, glm4ToolSuffix)
	}
	return sb.String(), nil
}

func (glm4Format) renderCall(name string, args json.RawMessage) (string, error) {
	compact, err := jsonrepr.Compact(args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\n%s\n", name, compact), nil
}

// extract matches a single leading "{name}\n{json}" pair. Anything that does
// not split into a name line and a JSON payload is left as plain text.
func (glm4Format) extract(text string) []ExtractedCall {
	idx := strings.Index(text, "\n")
	if idx < 0 {
		return nil
	}
	name := strings.TrimSpace(text[:idx])
	if name == "" {
		return nil
	}
	args, err := jsonrepr.Compact([]byte(strings.TrimSpace(text[idx+1:])))
	if err != nil {
		return nil
	}
	return []ExtractedCall{{Name: name, Arguments: args}}
}
