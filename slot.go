package fmtr

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholders use double-brace syntax: {{name}}.
var placeholderRe = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*)\}\}`)

// slotSegment is either literal text or a reference to a named variable.
// Exactly one of the two fields is meaningful.
type slotSegment struct {
	literal  string
	variable string
}

// Slot is an atomic template element: literal text interleaved with zero or
// more {{name}} placeholders. Slots are compiled once at formatter
// construction and immutable afterwards.
//
// Example:
//
//	slot := CompileSlot("Human: {{content}}\nAssistant:")
//	// renders to "Human: Hi\nAssistant:" with {"content": "Hi"}
type Slot struct {
	raw      string
	segments []slotSegment
}

// CompileSlot parses raw into a Slot, splitting out {{name}} placeholders.
// Text that does not match the placeholder syntax stays literal, including
// unpaired braces.
func CompileSlot(raw string) Slot {
	matches := placeholderRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return Slot{raw: raw, segments: []slotSegment{{literal: raw}}}
	}

	segments := make([]slotSegment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, slotSegment{literal: raw[last:m[0]]})
		}
		segments = append(segments, slotSegment{variable: raw[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(raw) {
		segments = append(segments, slotSegment{literal: raw[last:]})
	}
	return Slot{raw: raw, segments: segments}
}

// compileSlots compiles each raw string into a Slot.
func compileSlots(raw []string) []Slot {
	slots := make([]Slot, len(raw))
	for i, s := range raw {
		slots[i] = CompileSlot(s)
	}
	return slots
}

// Raw returns the uncompiled slot text.
func (s Slot) Raw() string {
	return s.raw
}

// HasPlaceholders reports whether the slot references any variables.
func (s Slot) HasPlaceholders() bool {
	for _, seg := range s.segments {
		if seg.variable != "" {
			return true
		}
	}
	return false
}

// render resolves the slot against vars. Every placeholder must be bound;
// an unbound name fails with ErrMissingVariable.
func (s Slot) render(vars map[string]string) (string, error) {
	if len(s.segments) == 1 && s.segments[0].variable == "" {
		return s.segments[0].literal, nil
	}

	var sb strings.Builder
	for _, seg := range s.segments {
		if seg.variable == "" {
			sb.WriteString(seg.literal)
			continue
		}
		value, ok := vars[seg.variable]
		if !ok {
			return "", fmt.Errorf("%w: {{%s}}", ErrMissingVariable, seg.variable)
		}
		sb.WriteString(value)
	}
	return sb.String(), nil
}
