package fmtr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/prompteng/fmtr/internal/jsonrepr"
)

// yamlFormat renders calls as small YAML documents:
//
//	tool: search
//	args:
//	  query: weather
//
// Extraction accepts a single document or a sequence of them, optionally
// wrapped in a code fence. Everything flows through yaml.Node so mapping key
// order survives both directions.
type yamlFormat struct{}

func (yamlFormat) describeTools(tools []ToolDefinition) (string, error) {
	var sb strings.Builder
	sb.WriteString("You have access to the following tools:\n")
	for _, tool := range tools {
		fmt.Fprintf(&sb, "\n- %s: %s\n", tool.Name, tool.Description)
		node, err := yamlNodeFromJSON(tool.Parameters.raw)
		if err != nil {
			return "", fmt.Errorf("%w: tool %q: %v", ErrBadToolSchema, tool.Name, err)
		}
		params, err := marshalYAML(node)
		if err != nil {
			return "", fmt.Errorf("%w: tool %q: %v", ErrBadToolSchema, tool.Name, err)
		}
		sb.WriteString("  parameters:\n")
		for _, line := range strings.Split(strings.TrimRight(params, "\n"), "\n") {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\nCall a tool with a YAML document:\n")
	sb.WriteString("tool: tool_name\n")
	sb.WriteString("args:\n")
	sb.WriteString("  param: value\n")
	return sb.String(), nil
}

func (yamlFormat) renderCall(name string, args json.RawMessage) (string, error) {
	argsNode, err := yamlNodeFromJSON(args)
	if err != nil {
		return "", err
	}
	doc := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			scalarString("tool"), scalarString(name),
			scalarString("args"), argsNode,
		},
	}
	return marshalYAML(doc)
}

func (yamlFormat) extract(text string) []ExtractedCall {
	candidate := stripFence(strings.TrimSpace(text))

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(candidate), &root); err != nil {
		return nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}

	var calls []ExtractedCall
	switch node := root.Content[0]; node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			call, ok := extractYAMLCall(item)
			if !ok {
				return nil
			}
			calls = append(calls, call)
		}
	case yaml.MappingNode:
		call, ok := extractYAMLCall(node)
		if !ok {
			return nil
		}
		calls = append(calls, call)
	default:
		return nil
	}
	return calls
}

// extractYAMLCall pulls the tool name and args out of one mapping node.
func extractYAMLCall(node *yaml.Node) (ExtractedCall, bool) {
	if node.Kind != yaml.MappingNode {
		return ExtractedCall{}, false
	}

	var name string
	var argsNode *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "tool":
			name = node.Content[i+1].Value
		case "args":
			argsNode = node.Content[i+1]
		}
	}
	if name == "" || argsNode == nil {
		return ExtractedCall{}, false
	}

	args, err := jsonFromYAMLNode(argsNode)
	if err != nil {
		return ExtractedCall{}, false
	}
	return ExtractedCall{Name: name, Arguments: args}, true
}

// stripFence removes one surrounding triple-backtick fence, with or without
// a language tag on the opening line.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") {
		return text
	}
	body := strings.TrimSuffix(text, "```")
	body = strings.TrimPrefix(body, "```")
	if idx := strings.Index(body, "\n"); idx >= 0 && strings.TrimSpace(body[:idx]) != "" {
		// opening line carried a language tag
		body = body[idx+1:]
	}
	return strings.TrimSpace(body)
}

func scalarString(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func marshalYAML(node *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// yamlNodeFromJSON builds an order-preserving yaml.Node tree from raw JSON.
// Scalars keep their explicit tags so values like "10" stay strings when
// marshaled.
func yamlNodeFromJSON(raw json.RawMessage) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	node, err := buildYAMLNode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return node, nil
}

func buildYAMLNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				value, err := buildYAMLNode(dec)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, scalarString(keyTok.(string)), value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		case '[':
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := buildYAMLNode(dec)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return scalarString(t), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}, nil
	case bool:
		value := "false"
		if t {
			value = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: value}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// jsonFromYAMLNode re-serializes a yaml.Node as compact JSON text, keeping
// mapping key order.
func jsonFromYAMLNode(node *yaml.Node) (string, error) {
	var sb strings.Builder
	if err := writeNodeJSON(&sb, node); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeNodeJSON(sb *strings.Builder, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return fmt.Errorf("empty document")
		}
		return writeNodeJSON(sb, node.Content[0])
	case yaml.AliasNode:
		return writeNodeJSON(sb, node.Alias)
	case yaml.MappingNode:
		sb.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(jsonrepr.Quote(node.Content[i].Value))
			sb.WriteString(": ")
			if err := writeNodeJSON(sb, node.Content[i+1]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		sb.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := writeNodeJSON(sb, item); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!int", "!!float":
			sb.WriteString(node.Value)
		case "!!bool":
			if strings.EqualFold(node.Value, "true") {
				sb.WriteString("true")
			} else {
				sb.WriteString("false")
			}
		case "!!null":
			sb.WriteString("null")
		default:
			sb.WriteString(jsonrepr.Quote(node.Value))
		}
		return nil
	}
	return fmt.Errorf("unexpected node kind %d", node.Kind)
}
