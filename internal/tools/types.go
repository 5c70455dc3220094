// Package tools holds the fixed set of utility tools and the read-only
// registry the transports resolve them from.
package tools

import "context"

// Descriptor describes a tool and its input schema.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Arguments is the decoded JSON arguments object of a tool call.
type Arguments map[string]any

// Content is a single content block of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the outcome of a successful tool call.
//
// Fields holds the flattened values the REST surface renders next to the
// tool name; it is never part of the JSON-RPC payload.
type Result struct {
	Content []Content      `json:"content"`
	Fields  map[string]any `json:"-"`
}

// Text returns the concatenated text of all content blocks.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	var out string
	for _, c := range r.Content {
		out += c.Text
	}
	return out
}

func textResult(text string, fields map[string]any) *Result {
	return &Result{
		Content: []Content{{Type: "text", Text: text}},
		Fields:  fields,
	}
}

// Tool is a named, schema-described callable.
type Tool interface {
	Descriptor() Descriptor
	Call(ctx context.Context, args Arguments) (*Result, error)
}
