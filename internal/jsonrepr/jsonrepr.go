// Package jsonrepr re-serializes raw JSON text into the exact textual shapes
// the formatters emit.
//
// The outputs are wire contracts consumed verbatim by downstream components,
// so a general-purpose encoder is not a substitute: Compact and Indent use
// ", " and ": " separators with non-ASCII left unescaped, and MapRepr
// produces a single-quoted mapping literal that is deliberately not JSON.
//
// All three rewrites stream tokens off the input, so object key order, value
// nesting, and number literals pass through untouched. Nesting depth is
// tracked with an explicit frame stack rather than call-stack recursion, so
// deeply nested input cannot overflow the stack.
package jsonrepr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type style int

const (
	styleCompact style = iota
	styleIndent
	styleMapRepr
)

// Compact re-serializes raw JSON with minimal whitespace: ", " between
// elements and ": " after keys, preserving key order and full nesting.
func Compact(raw []byte) (string, error) {
	return rewrite(raw, styleCompact)
}

// Indent pretty-prints raw JSON with 4-space indentation, preserving key
// order. Non-ASCII characters are left unescaped.
func Indent(raw []byte) (string, error) {
	return rewrite(raw, styleIndent)
}

// MapRepr renders raw JSON as a native ordered-mapping literal:
// single-quoted strings, True/False/None keywords, insertion order
// preserved. The exact textual shape is a contract; it is not valid JSON.
func MapRepr(raw []byte) (string, error) {
	return rewrite(raw, styleMapRepr)
}

func rewrite(raw []byte, st style) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	w := writer{style: st}
	wrote := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if wrote && len(w.stack) == 0 {
			return "", errors.New("trailing data after JSON value")
		}
		w.token(tok)
		wrote = true
	}
	if !wrote {
		return "", errors.New("empty JSON input")
	}
	return w.sb.String(), nil
}

// frame tracks one open container. n counts tokens emitted at this level;
// for objects, even n means the next token is a key.
type frame struct {
	object bool
	n      int
}

type writer struct {
	style style
	sb    strings.Builder
	stack []frame
}

func (w *writer) token(tok json.Token) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{', '[':
			w.separate()
			w.sb.WriteByte(byte(t))
			w.stack = append(w.stack, frame{object: t == '{'})
		case '}', ']':
			top := w.stack[len(w.stack)-1]
			w.stack = w.stack[:len(w.stack)-1]
			if w.style == styleIndent && top.n > 0 {
				w.sb.WriteByte('\n')
				w.pad()
			}
			w.sb.WriteByte(byte(t))
		}
	default:
		w.separate()
		w.scalar(tok)
	}
}

// separate writes whatever belongs before the next token at the current
// nesting level: nothing at top level, ": " before an object value, a comma
// or the post-open break before anything else.
func (w *writer) separate() {
	if len(w.stack) == 0 {
		return
	}
	top := &w.stack[len(w.stack)-1]
	defer func() { top.n++ }()

	if top.object && top.n%2 == 1 {
		w.sb.WriteString(": ")
		return
	}
	if top.n == 0 {
		if w.style == styleIndent {
			w.sb.WriteByte('\n')
			w.pad()
		}
		return
	}
	if w.style == styleIndent {
		w.sb.WriteString(",\n")
		w.pad()
	} else {
		w.sb.WriteString(", ")
	}
}

func (w *writer) pad() {
	for range w.stack {
		w.sb.WriteString("    ")
	}
}

func (w *writer) scalar(tok json.Token) {
	switch t := tok.(type) {
	case string:
		if w.style == styleMapRepr {
			w.sb.WriteString(QuoteSingle(t))
		} else {
			w.sb.WriteString(Quote(t))
		}
	case json.Number:
		w.sb.WriteString(t.String())
	case bool:
		switch {
		case w.style == styleMapRepr && t:
			w.sb.WriteString("True")
		case w.style == styleMapRepr:
			w.sb.WriteString("False")
		case t:
			w.sb.WriteString("true")
		default:
			w.sb.WriteString("false")
		}
	case nil:
		if w.style == styleMapRepr {
			w.sb.WriteString("None")
		} else {
			w.sb.WriteString("null")
		}
	}
}

// Quote renders s as a JSON string literal. Only the quote, backslash, and
// control characters are escaped; non-ASCII runes pass through verbatim.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// QuoteSingle renders s as a mapping-literal string: single quotes unless the
// string itself contains one (and no double quote), in which case double
// quotes are used instead.
func QuoteSingle(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote):
			sb.WriteByte('\\')
			sb.WriteByte(quote)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
