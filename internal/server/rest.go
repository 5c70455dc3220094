package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"simple-mcp/internal/dispatch"
	"simple-mcp/internal/tools"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	info := s.dispatcher.Info()
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "Simple MCP Server",
		"version":     info.Version,
		"description": info.Description,
		"endpoints": map[string]string{
			"/":                "Server information",
			"/health":          "Health check",
			"/tools":           "List available tools",
			"/tools/echo":      "Echo tool",
			"/tools/time":      "Current time tool",
			"/tools/calculate": "Calculator tool",
			"/tools/reverse":   "Text reversal tool",
			"/sse":             "MCP SSE endpoint (GET for info, POST for requests)",
			"/ws":              "JSON-RPC over WebSocket",
			"/mcp":             "MCP streamable HTTP endpoint",
			"/metrics":         "Prometheus metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": tools.FormatTimestamp(s.now()),
	})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	descs := s.dispatcher.ListTools()
	out := make([]restTool, 0, len(descs))
	for _, d := range descs {
		rt := restTool{Descriptor: d}
		if route, ok := routeFor(d.Name); ok {
			rt.Endpoint = route.Path
			rt.Method = route.Method
		}
		out = append(out, rt)
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out})
}

func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	s.serveTool(w, r, "echo")
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	s.serveTool(w, r, "get_current_time")
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	s.serveTool(w, r, "calculate")
}

func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	s.serveTool(w, r, "reverse_text")
}

// serveTool decodes the flattened argument body, calls the tool and renders
// {tool, ...fields}.
func (s *Server) serveTool(w http.ResponseWriter, r *http.Request, name string) {
	route, _ := routeFor(name)

	args := tools.Arguments{}
	if route.Method == http.MethodPost {
		decoded, ok := decodeArguments(r)
		if !ok {
			writeError(w, http.StatusBadRequest, route.MissingBody)
			return
		}
		args = decoded
	}

	ctx := dispatch.WithTransport(r.Context(), "rest")
	res, err := s.dispatcher.Call(ctx, name, args)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	body := make(map[string]any, len(res.Fields)+1)
	for k, v := range res.Fields {
		body[k] = v
	}
	body["tool"] = name
	writeJSON(w, http.StatusOK, body)
}

// decodeArguments reads a non-empty JSON object from the request body.
func decodeArguments(r *http.Request) (tools.Arguments, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, false
	}
	var args tools.Arguments
	if err := json.Unmarshal(data, &args); err != nil || len(args) == 0 {
		return nil, false
	}
	return args, true
}

func statusFor(err error) int {
	var te *tools.Error
	if !errors.As(err, &te) {
		return http.StatusInternalServerError
	}
	switch te.Kind {
	case tools.KindInvalidArguments, tools.KindUnknownOperation, tools.KindDivisionByZero:
		return http.StatusBadRequest
	case tools.KindMethodNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
