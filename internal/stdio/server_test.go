package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-mcp/internal/dispatch"
	"simple-mcp/internal/tools"
)

func serve(t *testing.T, input string) []map[string]any {
	t.Helper()
	reg, err := tools.Default(nil)
	require.NoError(t, err)
	s := New(dispatch.New(reg), zerolog.Nop())

	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(input), &out))

	var lines []map[string]any
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m), scanner.Text())
		lines = append(lines, m)
	}
	return lines
}

func TestServeHandshakeAndCalls(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hi"}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	}, "\n") + "\n"

	lines := serve(t, input)
	require.Len(t, lines, 4)

	assert.Equal(t, 1.0, lines[0]["id"])
	initRes := lines[0]["result"].(map[string]any)
	assert.Equal(t, "2025-03-26", initRes["protocolVersion"])
	assert.Equal(t, "simple-mcp-server", initRes["serverInfo"].(map[string]any)["name"])

	assert.Equal(t, 2.0, lines[1]["id"])
	assert.Len(t, lines[1]["result"].(map[string]any)["tools"], 4)

	assert.Equal(t, 3.0, lines[2]["id"])
	content := lines[2]["result"].(map[string]any)["content"].([]any)
	assert.Equal(t, map[string]any{"type": "text", "text": "Echo: hi"}, content[0])

	assert.Equal(t, 4.0, lines[3]["id"])
	assert.Equal(t, map[string]any{}, lines[3]["result"])
}

func TestServeErrorsKeepSessionAlive(t *testing.T) {
	input := strings.Join([]string{
		`{oops`,
		`{"jsonrpc":"2.0","id":"a","method":"tools/call","params":{"name":"calculate","arguments":{"operation":"divide","a":1,"b":0}}}`,
		`{"jsonrpc":"2.0","id":"b","method":"tools/call","params":{"name":"missing"}}`,
		`{"jsonrpc":"2.0","id":"c","method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":"d","method":"tools/call","params":{"name":"reverse_text","arguments":{"text":"ab"}}}`,
	}, "\n")

	lines := serve(t, input)
	require.Len(t, lines, 5)

	assert.Nil(t, lines[0]["id"])
	assert.Equal(t, -32603.0, lines[0]["error"].(map[string]any)["code"])
	assert.Equal(t, -32603.0, lines[1]["error"].(map[string]any)["code"])
	assert.Equal(t, -32601.0, lines[2]["error"].(map[string]any)["code"])
	assert.Equal(t, -32601.0, lines[3]["error"].(map[string]any)["code"])
	assert.Equal(t, "d", lines[4]["id"])
	assert.Contains(t, lines[4], "result")
}

func TestServeDefaultProtocolVersion(t *testing.T) {
	lines := serve(t, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	require.Len(t, lines, 1)
	assert.Equal(t, protocolVersion, lines[0]["result"].(map[string]any)["protocolVersion"])
}

func TestServeStopsOnCancelledContext(t *testing.T) {
	reg, err := tools.Default(nil)
	require.NoError(t, err)
	s := New(dispatch.New(reg), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err = s.Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`+"\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
