package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestWebSocketRoundTrip(t *testing.T) {
	conn := dialWS(t, newTestServer(t))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"reverse_text","arguments":{"text":"abc"}}}`)))
	var resp map[string]any
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, 1.0, resp["id"])
	content := resp["result"].(map[string]any)["content"].([]any)
	assert.Equal(t, "Reversed: cba", content[0].(map[string]any)["text"])
}

func TestWebSocketOrderingAndNotifications(t *testing.T) {
	conn := dialWS(t, newTestServer(t))

	msgs := []string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"unknown"}`,
	}
	for _, m := range msgs {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(m)))
	}

	var first, second, third map[string]any
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	require.NoError(t, conn.ReadJSON(&third))

	assert.Equal(t, 1.0, first["id"])
	assert.Contains(t, first, "result")
	assert.Nil(t, second["id"])
	assert.Equal(t, -32603.0, second["error"].(map[string]any)["code"])
	assert.Equal(t, 2.0, third["id"])
	assert.Equal(t, -32601.0, third["error"].(map[string]any)["code"])
}
