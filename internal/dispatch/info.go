package dispatch

// ServerInfo identifies the server to clients.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// DefaultServerInfo is the identity used unless overridden.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "simple-mcp-server",
		Version:     "1.0.0",
		Description: "A basic MCP server with utility tools",
	}
}

// ServerInfoNotification is the server/info event sent to SSE clients that
// connect without a request.
func (d *Dispatcher) ServerInfoNotification() Notification {
	return Notification{
		JSONRPC: Version,
		Method:  "server/info",
		Params:  d.info,
	}
}
