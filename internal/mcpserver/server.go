// Package mcpserver exposes the dispatcher through the official MCP Go SDK,
// which takes care of the initialization handshake and session lifecycle.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"simple-mcp/internal/dispatch"
	"simple-mcp/internal/tools"
)

// ServerInfoURI is the resource describing the server.
const ServerInfoURI = "resource://server-info"

// New builds an MCP server whose tools are the dispatcher's registry.
func New(d *dispatch.Dispatcher) *mcp.Server {
	info := d.Info()
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    info.Name,
		Version: info.Version,
	}, nil)

	for _, desc := range d.ListTools() {
		srv.AddTool(&mcp.Tool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: desc.InputSchema,
		}, toolHandler(d, desc.Name))
	}

	srv.AddResource(&mcp.Resource{
		URI:         ServerInfoURI,
		Name:        "Server Information",
		MIMEType:    "text/plain",
		Description: "Information about this MCP server",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      ServerInfoURI,
				MIMEType: "text/plain",
				Text:     serverInfoText(d),
			}},
		}, nil
	})

	return srv
}

// toolHandler bridges one tool onto the dispatcher. Tool failures are
// reported as error results so the session stays usable.
func toolHandler(d *dispatch.Dispatcher, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args tools.Arguments
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
			}
		}

		res, err := d.Call(dispatch.WithTransport(ctx, "mcp"), name, args)
		if err != nil {
			return errorResult(err), nil
		}

		content := make([]mcp.Content, 0, len(res.Content))
		for _, c := range res.Content {
			content = append(content, &mcp.TextContent{Text: c.Text})
		}
		return &mcp.CallToolResult{Content: content}, nil
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
	}
}

func serverInfoText(d *dispatch.Dispatcher) string {
	info := d.Info()
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", info.Name)
	fmt.Fprintf(&b, "%s:\n", info.Description)
	for _, desc := range d.ListTools() {
		fmt.Fprintf(&b, "- %s: %s\n", desc.Name, desc.Description)
	}
	fmt.Fprintf(&b, "\nVersion: %s\n", info.Version)
	return b.String()
}

// RunStdio serves srv over stdin/stdout until the client disconnects or
// ctx is cancelled.
func RunStdio(ctx context.Context, srv *mcp.Server) error {
	return srv.Run(ctx, &mcp.StdioTransport{})
}

// StreamableHandler serves srv over MCP streamable HTTP.
func StreamableHandler(srv *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil)
}
