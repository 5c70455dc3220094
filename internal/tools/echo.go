package tools

import "context"

// Echo returns its text argument prefixed with "Echo: ".
type Echo struct{}

func (Echo) Descriptor() Descriptor {
	return Descriptor{
		Name:        "echo",
		Description: "Echoes back the input text",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "The text to echo back",
				},
			},
			"required": []string{"text"},
		},
	}
}

func (Echo) Call(_ context.Context, args Arguments) (*Result, error) {
	text, ok := stringArg(args, "text")
	if !ok {
		return nil, errMissingText
	}
	out := "Echo: " + text
	return textResult(out, map[string]any{"result": out}), nil
}
