package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// Registry is an ordered, read-only set of tools. It is safe for concurrent
// use once constructed.
type Registry struct {
	tools   []Tool
	byName  map[string]Tool
	schemas map[string]*gojsonschema.Schema
}

// NewRegistry builds a registry from tools in the given order. Each input
// schema is compiled up front; duplicate names or invalid schemas fail.
func NewRegistry(ts ...Tool) (*Registry, error) {
	r := &Registry{
		tools:   make([]Tool, 0, len(ts)),
		byName:  make(map[string]Tool, len(ts)),
		schemas: make(map[string]*gojsonschema.Schema, len(ts)),
	}
	for _, t := range ts {
		desc := t.Descriptor()
		if desc.Name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, ok := r.byName[desc.Name]; ok {
			return nil, fmt.Errorf("duplicate tool %q", desc.Name)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(desc.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %q: %w", desc.Name, err)
		}
		r.tools = append(r.tools, t)
		r.byName[desc.Name] = t
		r.schemas[desc.Name] = schema
	}
	return r, nil
}

// Default returns the built-in tools: echo, get_current_time, calculate and
// reverse_text. now is the clock used by get_current_time; nil means
// time.Now.
func Default(now func() time.Time) (*Registry, error) {
	return NewRegistry(
		Echo{},
		CurrentTime{Now: now},
		Calculate{},
		ReverseText{},
	)
}

// List returns the descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Descriptor())
	}
	return out
}

// Lookup resolves a tool by exact name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Validate checks args against the input schema of the named tool.
func (r *Registry) Validate(name string, args Arguments) error {
	schema, ok := r.schemas[name]
	if !ok {
		return NewError(KindMethodNotFound, "Unknown tool: %s", name)
	}
	if args == nil {
		args = Arguments{}
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(args)))
	if err != nil {
		return &Error{Kind: KindInvalidArguments, Message: "Invalid arguments: " + err.Error(), Err: err}
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return NewError(KindInvalidArguments, "Invalid arguments: %s", strings.Join(msgs, "; "))
}
