package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"simple-mcp/internal/dispatch"
)

// handleSSE answers one JSON-RPC request as a single SSE event. A GET
// without a request gets the server/info notification instead.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	var payload any
	if r.Method == http.MethodPost {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			payload = dispatch.NewErrorResponse(nil, &dispatch.RPCError{
				Code:    dispatch.CodeInternalError,
				Message: err.Error(),
			})
		} else {
			ctx := dispatch.WithTransport(r.Context(), "sse")
			payload = s.dispatcher.HandleMessage(ctx, body)
		}
	} else {
		payload = s.dispatcher.ServerInfoNotification()
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode SSE payload")
		data, _ = json.Marshal(dispatch.NewErrorResponse(nil, &dispatch.RPCError{
			Code:    dispatch.CodeInternalError,
			Message: err.Error(),
		}))
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Accel-Buffering", "no")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write SSE event")
		return
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
