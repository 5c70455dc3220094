package tools

import "context"

// ReverseText reverses its text argument by code point.
type ReverseText struct{}

func (ReverseText) Descriptor() Descriptor {
	return Descriptor{
		Name:        "reverse_text",
		Description: "Reverses the input text",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "The text to reverse",
				},
			},
			"required": []string{"text"},
		},
	}
}

func (ReverseText) Call(_ context.Context, args Arguments) (*Result, error) {
	text, ok := stringArg(args, "text")
	if !ok {
		return nil, errMissingText
	}
	reversed := Reverse(text)
	return textResult("Reversed: "+reversed, map[string]any{
		"original": text,
		"result":   reversed,
	}), nil
}

// Reverse returns s with its code points in reverse order.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
