package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-mcp/internal/client"
	"simple-mcp/internal/dispatch"
	"simple-mcp/internal/server"
	"simple-mcp/internal/tools"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg, err := tools.Default(nil)
	require.NoError(t, err)
	srv := server.New(server.Config{Logger: zerolog.Nop()}, dispatch.New(reg))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestToolsCommand(t *testing.T) {
	cmd := GetRootCmd()
	cmd.SetArgs([]string{"tools"})

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	require.NoError(t, cmd.Execute())

	var got struct {
		Tools []tools.Descriptor `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(output.Bytes(), &got))
	require.Len(t, got.Tools, 4)
	assert.Equal(t, "echo", got.Tools[0].Name)
	assert.Equal(t, "reverse_text", got.Tools[3].Name)
}

func TestRunChecks(t *testing.T) {
	ts := newTestServer(t)

	output := &bytes.Buffer{}
	passed, failed := runChecks(context.Background(), client.New(ts.URL, nil), output)

	assert.Equal(t, len(checks), passed, output.String())
	assert.Zero(t, failed)
	assert.Contains(t, output.String(), "PASS GET /health: Health: healthy")
	assert.Contains(t, output.String(), "Result: 10 + 5 = 15")
	assert.Contains(t, output.String(), "Error: Division by zero")
}

func TestCheckCommand(t *testing.T) {
	t.Run("healthy server", func(t *testing.T) {
		ts := newTestServer(t)

		cmd := GetRootCmd()
		cmd.SetArgs([]string{"check", "--url", ts.URL})
		output := &bytes.Buffer{}
		cmd.SetOut(output)

		require.NoError(t, cmd.Execute())
		assert.Contains(t, output.String(), "All checks passed.")
	})

	t.Run("unreachable server", func(t *testing.T) {
		ts := newTestServer(t)
		url := ts.URL
		ts.Close()

		cmd := GetRootCmd()
		cmd.SetArgs([]string{"check", "--url", url})
		output := &bytes.Buffer{}
		cmd.SetOut(output)
		cmd.SetErr(&bytes.Buffer{})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "check(s) failed")
		assert.Contains(t, output.String(), "FAIL")
	})
}
