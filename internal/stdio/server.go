// Package stdio serves newline-delimited JSON-RPC over a byte stream, one
// message at a time.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"simple-mcp/internal/dispatch"
)

const (
	protocolVersion = "2024-11-05"
	maxLineBytes    = 4 << 20
)

// Server reads one JSON-RPC message per line and writes one response line
// per request. The MCP handshake (initialize, ping, notifications) is
// answered locally; everything else goes to the dispatcher.
type Server struct {
	dispatcher *dispatch.Dispatcher
	logger     zerolog.Logger
}

// New creates a stdio server over d.
func New(d *dispatch.Dispatcher, logger zerolog.Logger) *Server {
	return &Server{dispatcher: d, logger: logger}
}

// Serve processes messages from r until EOF or ctx is cancelled. Requests
// are handled strictly in order.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	session := uuid.NewString()
	logger := s.logger.With().Str("session", session).Logger()
	logger.Info().Msg("Stdio session started")
	defer logger.Info().Msg("Stdio session ended")

	ctx = dispatch.WithTransport(ctx, "stdio")
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		resp := s.handleLine(ctx, line)
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to encode JSON-RPC response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read JSON-RPC request: %w", err)
	}
	return nil
}

func (s *Server) handleLine(ctx context.Context, line []byte) *dispatch.Response {
	req, rpcErr := dispatch.ParseRequest(line)
	if rpcErr != nil {
		s.logger.Warn().Str("error", rpcErr.Message).Msg("Malformed JSON-RPC message")
		return dispatch.NewErrorResponse(nil, rpcErr)
	}

	if req.IsNotification() {
		if !strings.HasPrefix(req.Method, "notifications/") {
			s.dispatcher.Handle(ctx, req)
		}
		return nil
	}

	switch req.Method {
	case "initialize":
		return dispatch.NewResult(req.ID, s.initializeResult(req.Params))
	case "ping":
		return dispatch.NewResult(req.ID, struct{}{})
	default:
		return s.dispatcher.Handle(ctx, req)
	}
}

func (s *Server) initializeResult(params json.RawMessage) map[string]any {
	version := protocolVersion
	var p struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	if len(params) > 0 && json.Unmarshal(params, &p) == nil && p.ProtocolVersion != "" {
		version = p.ProtocolVersion
	}
	info := s.dispatcher.Info()
	return map[string]any{
		"protocolVersion": version,
		"capabilities": map[string]any{
			"tools": map[string]any{
				"listChanged": false,
			},
		},
		"serverInfo": map[string]any{
			"name":    info.Name,
			"version": info.Version,
		},
	}
}
