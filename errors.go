package fmtr

import "errors"

// Construction errors
var (
	// ErrUnknownFormat is returned when a formatter is constructed with a
	// tool format identifier outside the supported set. The format table is
	// closed; resolution happens once at construction, never at call time.
	ErrUnknownFormat = errors.New("unknown tool format")

	// ErrPlaceholderInSlot is returned when an EmptyFormatter is given a slot
	// containing a {{placeholder}}. Empty formatters carry static text only.
	ErrPlaceholderInSlot = errors.New("literal slot must not contain a placeholder")
)

// Rendering errors
var (
	// ErrMissingVariable is returned when a slot placeholder has no binding
	// in the variables passed to Apply.
	ErrMissingVariable = errors.New("template variable is not bound")

	// ErrMalformedCall is returned when FunctionFormatter content is not
	// valid JSON, or does not decode to a {name, arguments} object or an
	// array of such objects.
	ErrMalformedCall = errors.New("malformed function call payload")

	// ErrBadToolSchema is returned when a tool definition is missing a
	// required field (name, description, parameters.type,
	// parameters.properties) or fails schema validation.
	ErrBadToolSchema = errors.New("invalid tool definition")
)
