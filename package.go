// Package fmtr renders structured data (tool definitions, function-call
// invocations, templated text fragments) into text for a language model's
// prompt, and reverses the process: given raw generated text, it recovers
// zero or more structured tool invocations.
//
// The package is aimed at the prompt-construction and response-parsing
// layers of a conversational pipeline. Model loading, inference, and
// conversation-history assembly live elsewhere; callers hand this package
// JSON text and named string variables, and get rendered text or extracted
// call lists back.
//
// # Formatters
//
//   - [StringFormatter] resolves {{name}} placeholders in ordered slots.
//   - [EmptyFormatter] returns static slots untouched.
//   - [FunctionFormatter] renders JSON-encoded function calls in the
//     convention of a configured tool format.
//   - [ToolFormatter] renders a tool-usage description for a batch of tool
//     definitions, and extracts calls back out of model output.
//
// Every formatter is constructed once and is safe for concurrent use: there
// is no per-call state, and the format table is read-only after process
// start.
//
// # Tool formats
//
// A format identifier chosen at construction ([FormatDefault], [FormatGLM4],
// [FormatJSON], [FormatYAML]) selects how calls are rendered and extracted.
// Rendering and extraction are inverses: for any well-formed call,
// extracting its rendering reproduces the same name and a structurally equal
// arguments value.
//
// # Quick start
//
//	tf, err := fmtr.NewToolFormatter(fmtr.FormatJSON)
//	if err != nil {
//	    return err
//	}
//
//	// Into the prompt:
//	desc, err := tf.Apply(toolsJSON, nil)
//
//	// Out of the model's reply:
//	calls, ok := tf.Extract(output)
//	if !ok {
//	    // no tool call; output is the final answer
//	}
//
// Rendering errors ([ErrMalformedCall], [ErrBadToolSchema]) indicate bugs in
// caller-supplied data and surface immediately. Extraction failures are not
// errors: malformed model output is expected, so unrecognizable candidates
// are skipped and a callless text simply reports ok=false.
package fmtr
