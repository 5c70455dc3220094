package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Supported calculate operations.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
)

// Calculate performs basic arithmetic on two numbers.
type Calculate struct{}

func (Calculate) Descriptor() Descriptor {
	return Descriptor{
		Name:        "calculate",
		Description: "Performs basic arithmetic operations",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"operation": map[string]any{
					"type":        "string",
					"enum":        []string{OpAdd, OpSubtract, OpMultiply, OpDivide},
					"description": "The operation to perform",
				},
				"a": map[string]any{
					"type":        "number",
					"description": "First number",
				},
				"b": map[string]any{
					"type":        "number",
					"description": "Second number",
				},
			},
			"required": []string{"operation", "a", "b"},
		},
	}
}

func (Calculate) Call(_ context.Context, args Arguments) (*Result, error) {
	rawOp, hasOp := args["operation"]
	rawA, hasA := args["a"]
	rawB, hasB := args["b"]
	if !hasOp || rawOp == nil || rawOp == "" || !hasA || rawA == nil || !hasB || rawB == nil {
		return nil, NewError(KindInvalidArguments, "Missing required parameters: operation, a, b")
	}

	a, err := toNumber(rawA)
	if err != nil {
		return nil, err
	}
	b, err := toNumber(rawB)
	if err != nil {
		return nil, err
	}

	op, ok := rawOp.(string)
	if !ok {
		op = fmt.Sprint(rawOp)
	}
	result, err := Compute(op, a, b)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Result: %s %s %s = %s", formatNumber(a), op, formatNumber(b), formatNumber(result))
	return textResult(text, map[string]any{
		"operation": op,
		"a":         a,
		"b":         b,
		"result":    result,
	}), nil
}

// Compute applies op to a and b.
func Compute(op string, a, b float64) (float64, error) {
	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return 0, NewError(KindDivisionByZero, "Division by zero")
		}
		result = a / b
	default:
		return 0, NewError(KindUnknownOperation, "Unknown operation: %s", op)
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, NewError(KindInvalidArguments, "Result out of range")
	}
	return result, nil
}

// toNumber accepts JSON numbers and numeric strings.
func toNumber(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		f, err = n.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, NewError(KindInvalidArguments, "Invalid number format: %v is not a number", v)
	}
	if err != nil {
		return 0, &Error{Kind: KindInvalidArguments, Message: fmt.Sprintf("Invalid number format: %q", v), Err: err}
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, NewError(KindInvalidArguments, "Invalid number format: %v is not finite", v)
	}
	return f, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
