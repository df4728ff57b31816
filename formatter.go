package fmtr

import "fmt"

// Formatter renders structured content into prompt-ready text.
//
// Apply returns one string per rendered element, in input order, never a
// concatenation: callers decide how rendered pieces join the surrounding
// prompt. The meaning of content depends on the implementation:
//
//   - [StringFormatter] and [EmptyFormatter] ignore content and resolve
//     their configured slots.
//   - [FunctionFormatter] decodes content as one function call object or an
//     array of them, and renders one string per call.
//   - [ToolFormatter] decodes content as an array of tool definitions and
//     renders a single usage description.
//
// Formatters are immutable after construction and hold no per-call state,
// so a single instance may be shared across goroutines.
type Formatter interface {
	Apply(content string, vars map[string]string) ([]string, error)
}

// StringFormatter resolves an ordered sequence of slots against named
// variables. Each slot renders to one output string with every {{name}}
// placeholder replaced by the corresponding variable.
//
//	f := fmtr.NewStringFormatter("<s>", "Human: {{content}}\nAssistant:")
//	out, err := f.Apply("", map[string]string{"content": "Hi"})
//	// out == []string{"<s>", "Human: Hi\nAssistant:"}
type StringFormatter struct {
	slots []Slot
}

// NewStringFormatter compiles the given slot strings.
func NewStringFormatter(slots ...string) *StringFormatter {
	return &StringFormatter{slots: compileSlots(slots)}
}

// Apply substitutes every placeholder with its bound variable, preserving
// literal text verbatim. A placeholder naming an unset variable fails with
// ErrMissingVariable. The content argument is ignored.
func (f *StringFormatter) Apply(_ string, vars map[string]string) ([]string, error) {
	out := make([]string, len(f.slots))
	for i, slot := range f.slots {
		rendered, err := slot.render(vars)
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}

// EmptyFormatter returns its configured literal slots unchanged, ignoring
// any supplied variables. Use it for static instruction text.
type EmptyFormatter struct {
	slots []string
}

// NewEmptyFormatter compiles the given slot strings. Slots containing
// {{placeholder}} syntax are rejected with ErrPlaceholderInSlot, since an
// empty formatter never substitutes anything.
func NewEmptyFormatter(slots ...string) (*EmptyFormatter, error) {
	for _, s := range slots {
		if placeholderRe.MatchString(s) {
			return nil, fmt.Errorf("%w: %q", ErrPlaceholderInSlot, s)
		}
	}
	out := make([]string, len(slots))
	copy(out, slots)
	return &EmptyFormatter{slots: out}, nil
}

// Apply returns the configured slots verbatim.
func (f *EmptyFormatter) Apply(_ string, _ map[string]string) ([]string, error) {
	out := make([]string, len(f.slots))
	copy(out, f.slots)
	return out, nil
}
