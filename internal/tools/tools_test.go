package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho(t *testing.T) {
	for _, text := range []string{"", "hi", "MCP Server", "héllo wörld"} {
		res, err := Echo{}.Call(context.Background(), Arguments{"text": text})
		require.NoError(t, err)
		assert.Equal(t, "Echo: "+text, res.Text())
		assert.Equal(t, "Echo: "+text, res.Fields["result"])
		require.Len(t, res.Content, 1)
		assert.Equal(t, "text", res.Content[0].Type)
	}
}

func TestEchoInvalidArguments(t *testing.T) {
	for name, args := range map[string]Arguments{
		"missing":    {},
		"nil":        nil,
		"wrong type": {"text": 42},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Echo{}.Call(context.Background(), args)
			require.Error(t, err)
			assert.Equal(t, KindInvalidArguments, KindOf(err))
			assert.Equal(t, "Missing 'text' parameter", err.Error())
		})
	}
}

func TestReverse(t *testing.T) {
	assert.Equal(t, "", Reverse(""))
	assert.Equal(t, "revreS PCM", Reverse("MCP Server"))
	assert.Equal(t, "界世 ,olleh", Reverse("hello, 世界"))
	for _, s := range []string{"", "a", "ab", "racecar", "日本語テキスト", "mixed 123 ✓"} {
		assert.Equal(t, s, Reverse(Reverse(s)), "double reversal of %q", s)
	}
}

func TestReverseTextCall(t *testing.T) {
	res, err := ReverseText{}.Call(context.Background(), Arguments{"text": "MCP Server"})
	require.NoError(t, err)
	assert.Equal(t, "Reversed: revreS PCM", res.Text())
	assert.Equal(t, "MCP Server", res.Fields["original"])
	assert.Equal(t, "revreS PCM", res.Fields["result"])

	_, err = ReverseText{}.Call(context.Background(), Arguments{})
	assert.Equal(t, KindInvalidArguments, KindOf(err))
}

func TestCurrentTimeIgnoresTimezone(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 30, 0, 0, time.FixedZone("X", 3600))
	tool := CurrentTime{Now: func() time.Time { return fixed }}

	plain, err := tool.Call(context.Background(), nil)
	require.NoError(t, err)
	tz, err := tool.Call(context.Background(), Arguments{"timezone": "Asia/Tokyo"})
	require.NoError(t, err)

	assert.Equal(t, plain.Text(), tz.Text())
	assert.Equal(t, "Current server time: 2024-05-01T11:30:00Z", plain.Text())
	assert.Equal(t, "2024-05-01T11:30:00Z", plain.Fields["result"])
	assert.Equal(t, "UTC", plain.Fields["timezone"])
}

func TestCompute(t *testing.T) {
	pairs := [][2]float64{{1, 2}, {-3.5, 7}, {0, 0}, {1e6, -2e-3}, {10, 4}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		got, err := Compute(OpAdd, a, b)
		require.NoError(t, err)
		assert.Equal(t, a+b, got)

		got, err = Compute(OpSubtract, a, b)
		require.NoError(t, err)
		assert.Equal(t, a-b, got)

		got, err = Compute(OpMultiply, a, b)
		require.NoError(t, err)
		assert.Equal(t, a*b, got)

		if b != 0 {
			got, err = Compute(OpDivide, a, b)
			require.NoError(t, err)
			assert.Equal(t, a/b, got)
		}
	}
}

func TestComputeErrors(t *testing.T) {
	for _, a := range []float64{0, 1, -7.25} {
		_, err := Compute(OpDivide, a, 0)
		require.Error(t, err)
		assert.Equal(t, KindDivisionByZero, KindOf(err))
		assert.Equal(t, "Division by zero", err.Error())
	}

	for _, op := range []string{"pow", "", "ADD", "mod"} {
		_, err := Compute(op, 1, 2)
		require.Error(t, err)
		assert.Equal(t, KindUnknownOperation, KindOf(err))
		assert.Equal(t, "Unknown operation: "+op, err.Error())
	}

	_, err := Compute(OpMultiply, 1e308, 10)
	assert.Equal(t, KindInvalidArguments, KindOf(err))
}

func TestCalculateCall(t *testing.T) {
	res, err := Calculate{}.Call(context.Background(), Arguments{"operation": "add", "a": 10.0, "b": 5.0})
	require.NoError(t, err)
	assert.Equal(t, "Result: 10 add 5 = 15", res.Text())
	assert.Equal(t, 15.0, res.Fields["result"])
	assert.Equal(t, "add", res.Fields["operation"])

	res, err = Calculate{}.Call(context.Background(), Arguments{"operation": "divide", "a": "10", "b": 4.0})
	require.NoError(t, err)
	assert.Equal(t, "Result: 10 divide 4 = 2.5", res.Text())
}

func TestCalculateCallErrors(t *testing.T) {
	tests := []struct {
		name string
		args Arguments
		kind Kind
		msg  string
	}{
		{"missing all", Arguments{}, KindInvalidArguments, "Missing required parameters: operation, a, b"},
		{"missing b", Arguments{"operation": "add", "a": 1.0}, KindInvalidArguments, "Missing required parameters: operation, a, b"},
		{"null a", Arguments{"operation": "add", "a": nil, "b": 1.0}, KindInvalidArguments, "Missing required parameters: operation, a, b"},
		{"non numeric", Arguments{"operation": "add", "a": "x", "b": 1.0}, KindInvalidArguments, ""},
		{"bool operand", Arguments{"operation": "add", "a": true, "b": 1.0}, KindInvalidArguments, ""},
		{"divide by zero", Arguments{"operation": "divide", "a": 10.0, "b": 0.0}, KindDivisionByZero, "Division by zero"},
		{"unknown op", Arguments{"operation": "pow", "a": 2.0, "b": 3.0}, KindUnknownOperation, "Unknown operation: pow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate{}.Call(context.Background(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			if tt.msg != "" {
				assert.Equal(t, tt.msg, err.Error())
			} else {
				assert.Contains(t, err.Error(), "Invalid number format")
			}
		})
	}
}
