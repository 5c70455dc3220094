package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"simple-mcp/internal/dispatch"
)

// handleWebSocket serves JSON-RPC over a WebSocket connection. Messages on
// one connection are handled in order; notifications get no reply.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	connID, err := gonanoid.New()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to generate connection id")
		connID = "unknown"
	}
	logger := s.logger.With().Str("conn_id", connID).Logger()
	logger.Info().Str("ip", r.RemoteAddr).Msg("WebSocket client connected")
	defer logger.Info().Msg("WebSocket client disconnected")

	ctx := dispatch.WithTransport(r.Context(), "websocket")
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}

		req, rpcErr := dispatch.ParseRequest(message)
		var resp *dispatch.Response
		switch {
		case rpcErr != nil:
			resp = dispatch.NewErrorResponse(nil, rpcErr)
		case req.IsNotification():
			s.dispatcher.Handle(ctx, req)
			continue
		default:
			resp = s.dispatcher.Handle(ctx, req)
		}

		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn().Err(err).Msg("Failed to send response")
			return
		}
	}
}
