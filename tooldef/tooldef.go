// Package tooldef builds tool-definition JSON for the fmtr formatters.
//
// Property order is part of the rendered contract: descriptions list
// parameters in the order they were declared. Definitions are therefore
// built with an ordered slice rather than a map.
//
//	content := tooldef.Content(
//	    tooldef.New("search", "Search for information").
//	        String("query", "Search query").
//	        Integer("limit", "Max results").
//	        Require("query"),
//	)
package tooldef

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/prompteng/fmtr/internal/jsonrepr"
)

// Definition accumulates one tool definition. Zero value is not usable;
// start with New.
type Definition struct {
	name        string
	description string
	properties  []property
	required    []string
}

type property struct {
	name        string
	typ         string
	description string
	enum        []string
	itemType    string
}

// New starts a definition for the named tool.
func New(name, description string) *Definition {
	return &Definition{name: name, description: description}
}

// Param declares a parameter with an explicit JSON-Schema type.
// Returns self for chaining.
func (d *Definition) Param(name, typ, description string) *Definition {
	d.properties = append(d.properties, property{name: name, typ: typ, description: description})
	return d
}

// String declares a string parameter.
func (d *Definition) String(name, description string) *Definition {
	return d.Param(name, "string", description)
}

// Integer declares an integer parameter.
func (d *Definition) Integer(name, description string) *Definition {
	return d.Param(name, "integer", description)
}

// Number declares a number parameter.
func (d *Definition) Number(name, description string) *Definition {
	return d.Param(name, "number", description)
}

// Boolean declares a boolean parameter.
func (d *Definition) Boolean(name, description string) *Definition {
	return d.Param(name, "boolean", description)
}

// Enum declares a string parameter restricted to the given values.
func (d *Definition) Enum(name, description string, values ...string) *Definition {
	d.properties = append(d.properties, property{
		name: name, typ: "string", description: description, enum: values,
	})
	return d
}

// Array declares an array parameter whose items have the given type.
func (d *Definition) Array(name, itemType, description string) *Definition {
	d.properties = append(d.properties, property{
		name: name, typ: "array", description: description, itemType: itemType,
	})
	return d
}

// Require marks the named parameters as required.
func (d *Definition) Require(names ...string) *Definition {
	d.required = append(d.required, names...)
	return d
}

// JSON renders the definition as a single JSON object, properties in
// declaration order.
func (d *Definition) JSON() string {
	var sb strings.Builder
	d.appendJSON(&sb)
	return sb.String()
}

func (d *Definition) appendJSON(sb *strings.Builder) {
	sb.WriteString(`{"name": `)
	sb.WriteString(jsonrepr.Quote(d.name))
	sb.WriteString(`, "description": `)
	sb.WriteString(jsonrepr.Quote(d.description))
	sb.WriteString(`, "parameters": `)
	d.appendParametersJSON(sb)
	sb.WriteString(`}`)
}

func (d *Definition) appendParametersJSON(sb *strings.Builder) {
	sb.WriteString(`{"type": "object", "properties": {`)
	for i, p := range d.properties {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(jsonrepr.Quote(p.name))
		sb.WriteString(`: {"type": `)
		sb.WriteString(jsonrepr.Quote(p.typ))
		sb.WriteString(`, "description": `)
		sb.WriteString(jsonrepr.Quote(p.description))
		if len(p.enum) > 0 {
			sb.WriteString(`, "enum": [`)
			for j, v := range p.enum {
				if j > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(jsonrepr.Quote(v))
			}
			sb.WriteString(`]`)
		}
		if p.itemType != "" {
			sb.WriteString(`, "items": {"type": `)
			sb.WriteString(jsonrepr.Quote(p.itemType))
			sb.WriteString(`}`)
		}
		sb.WriteString(`}`)
	}
	sb.WriteString(`}`)
	if len(d.required) > 0 {
		sb.WriteString(`, "required": [`)
		for i, r := range d.required {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(jsonrepr.Quote(r))
		}
		sb.WriteString(`]`)
	}
	sb.WriteString(`}`)
}

// Content renders definitions as the JSON array ToolFormatter.Apply
// consumes, in input order.
func Content(defs ...*Definition) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, d := range defs {
		if i > 0 {
			sb.WriteString(", ")
		}
		d.appendJSON(&sb)
	}
	sb.WriteString("]")
	return sb.String()
}

// Compile compiles the definition's parameter spec as a JSON Schema.
// Returns an error if the schema is invalid.
func (d *Definition) Compile() (*jsonschema.Schema, error) {
	var sb strings.Builder
	d.appendParametersJSON(&sb)
	return compile(sb.String())
}

// MustCompile is like Compile but panics on error. Use for definitions
// declared at init time.
func (d *Definition) MustCompile() *jsonschema.Schema {
	s, err := d.Compile()
	if err != nil {
		panic(err)
	}
	return s
}

func compile(raw string) (*jsonschema.Schema, error) {
	data, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("tool.json", data); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := c.Compile("tool.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return compiled, nil
}
