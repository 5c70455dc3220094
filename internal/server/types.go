package server

import "simple-mcp/internal/tools"

// restTool is a tool descriptor as listed by GET /tools.
type restTool struct {
	tools.Descriptor
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
}

// restRoute binds a tool to its REST endpoint.
type restRoute struct {
	Tool   string
	Path   string
	Method string
	// MissingBody is reported when the request has no usable JSON object.
	MissingBody string
}

var restRoutes = []restRoute{
	{Tool: "echo", Path: "/tools/echo", Method: "POST", MissingBody: "Missing 'text' parameter"},
	{Tool: "get_current_time", Path: "/tools/time", Method: "GET"},
	{Tool: "calculate", Path: "/tools/calculate", Method: "POST", MissingBody: "Missing request body"},
	{Tool: "reverse_text", Path: "/tools/reverse", Method: "POST", MissingBody: "Missing 'text' parameter"},
}

func routeFor(tool string) (restRoute, bool) {
	for _, r := range restRoutes {
		if r.Tool == tool {
			return r, true
		}
	}
	return restRoute{}, false
}
