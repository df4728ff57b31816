package fmtr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ToolDefinition describes a callable tool: its name, a human-readable
// description, and a JSON-Schema-shaped parameter spec.
//
// Property iteration order is the order given in the input, never
// alphabetical: the rendered descriptions are order-sensitive.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  ToolParameters

	// raw is the definition exactly as it appeared in the input, kept for
	// variants that render the original JSON back out.
	raw json.RawMessage
}

// ToolParameters is the parameter spec of a tool.
type ToolParameters struct {
	Type       string
	Properties []ToolProperty
	Required   []string

	raw json.RawMessage
}

// ToolProperty is a single named parameter.
type ToolProperty struct {
	Name        string
	Type        string
	Description string
	Enum        []string
	Items       *ToolItems
}

// ToolItems is the element spec of an array parameter.
type ToolItems struct {
	Type string `json:"type"`
}

// IsRequired reports whether name is listed in the required set. An absent
// required list means no property is required.
func (p ToolParameters) IsRequired(name string) bool {
	for _, r := range p.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ToolFormatter renders tool-usage descriptions and recovers structured tool
// calls from model output, using the convention of its configured format.
//
//	f, err := fmtr.NewToolFormatter(fmtr.FormatJSON)
//	desc, err := f.Apply(toolsJSON, nil)  // goes into the prompt
//	calls, ok := f.Extract(modelOutput)   // reverses the model's rendering
type ToolFormatter struct {
	format          toolFormat
	validateSchemas bool
}

// NewToolFormatter resolves the format identifier against the closed format
// table. Unknown identifiers fail here with ErrUnknownFormat, never at call
// time.
func NewToolFormatter(format string) (*ToolFormatter, error) {
	f, err := resolveToolFormat(format)
	if err != nil {
		return nil, err
	}
	return &ToolFormatter{format: f}, nil
}

// WithSchemaValidation makes Apply compile every tool's parameter spec as a
// JSON Schema, rejecting definitions whose schemas would not compile.
// Returns self for chaining; call before sharing the formatter.
func (f *ToolFormatter) WithSchemaValidation() *ToolFormatter {
	f.validateSchemas = true
	return f
}

// Apply decodes content as a JSON array of tool definitions and renders a
// single tool-usage description for the whole batch, preserving input order.
// The vars argument is ignored.
func (f *ToolFormatter) Apply(content string, _ map[string]string) ([]string, error) {
	tools, err := DecodeToolDefinitions(content)
	if err != nil {
		return nil, err
	}
	if f.validateSchemas {
		for _, tool := range tools {
			if err := compileParameters(tool.Parameters.raw); err != nil {
				return nil, fmt.Errorf("%w: tool %q: %v", ErrBadToolSchema, tool.Name, err)
			}
		}
	}
	desc, err := f.format.describeTools(tools)
	if err != nil {
		return nil, err
	}
	return []string{desc}, nil
}

// Extract recovers structured tool calls from text for the configured
// format. It returns the calls in order of appearance and true, or nil and
// false when no call is recognized, in which case the caller's original text
// stands as plain content. Extraction never fails: candidates that do not
// parse are skipped silently.
func (f *ToolFormatter) Extract(text string) ([]ExtractedCall, bool) {
	calls := f.format.extract(text)
	if len(calls) == 0 {
		return nil, false
	}
	return calls, true
}

// DecodeToolDefinitions decodes a JSON array of tool definitions, preserving
// the property order of each tool's parameter spec. Definitions missing
// name, description, parameters.type, or parameters.properties fail with
// ErrBadToolSchema. An absent required list is treated as empty, not an
// error.
func DecodeToolDefinitions(content string) ([]ToolDefinition, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(content), &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToolSchema, err)
	}

	tools := make([]ToolDefinition, 0, len(raws))
	for i, raw := range raws {
		tool, err := decodeToolDefinition(raw)
		if err != nil {
			return nil, fmt.Errorf("tool %d: %w", i, err)
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

func decodeToolDefinition(raw json.RawMessage) (ToolDefinition, error) {
	var aux struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Parameters  *struct {
			Type       *string         `json:"type"`
			Properties json.RawMessage `json:"properties"`
			Required   []string        `json:"required"`
		} `json:"parameters"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return ToolDefinition{}, fmt.Errorf("%w: %v", ErrBadToolSchema, err)
	}

	switch {
	case aux.Name == nil:
		return ToolDefinition{}, fmt.Errorf("%w: missing name", ErrBadToolSchema)
	case aux.Description == nil:
		return ToolDefinition{}, fmt.Errorf("%w: missing description", ErrBadToolSchema)
	case aux.Parameters == nil:
		return ToolDefinition{}, fmt.Errorf("%w: missing parameters", ErrBadToolSchema)
	case aux.Parameters.Type == nil:
		return ToolDefinition{}, fmt.Errorf("%w: missing parameters.type", ErrBadToolSchema)
	case aux.Parameters.Properties == nil:
		return ToolDefinition{}, fmt.Errorf("%w: missing parameters.properties", ErrBadToolSchema)
	}

	properties, err := decodeOrderedProperties(aux.Parameters.Properties)
	if err != nil {
		return ToolDefinition{}, fmt.Errorf("%w: %v", ErrBadToolSchema, err)
	}

	var paramsRaw struct {
		Parameters json.RawMessage `json:"parameters"`
	}
	// Already unmarshaled once above; cannot fail here.
	_ = json.Unmarshal(raw, &paramsRaw)

	return ToolDefinition{
		Name:        *aux.Name,
		Description: *aux.Description,
		Parameters: ToolParameters{
			Type:       *aux.Parameters.Type,
			Properties: properties,
			Required:   aux.Parameters.Required,
			raw:        paramsRaw.Parameters,
		},
		raw: raw,
	}, nil
}

// decodeOrderedProperties walks the properties object token by token so the
// input's key order survives. encoding/json maps would randomize it.
func decodeOrderedProperties(raw json.RawMessage) ([]ToolProperty, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parameters.properties must be an object")
	}

	var properties []ToolProperty
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name := keyTok.(string)

		var spec struct {
			Type        string     `json:"type"`
			Description string     `json:"description"`
			Enum        []string   `json:"enum"`
			Items       *ToolItems `json:"items"`
		}
		if err := dec.Decode(&spec); err != nil {
			return nil, fmt.Errorf("property %q: %v", name, err)
		}
		properties = append(properties, ToolProperty{
			Name:        name,
			Type:        spec.Type,
			Description: spec.Description,
			Enum:        spec.Enum,
			Items:       spec.Items,
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return properties, nil
}

// compileParameters compiles a parameter spec with the JSON Schema compiler,
// catching structurally invalid schemas before they reach a prompt.
func compileParameters(raw json.RawMessage) error {
	data, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("tool.json", data); err != nil {
		return err
	}
	if _, err := c.Compile("tool.json"); err != nil {
		return err
	}
	return nil
}
