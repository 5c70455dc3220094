package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"simple-mcp/internal/tools"
)

// Version is the JSON-RPC protocol version carried on every envelope.
const Version = "2.0"

// JSON-RPC error codes emitted by Handle. Every fault other than an unknown
// method or tool is reported as CodeInternalError.
const (
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// Recognized methods.
const (
	MethodToolsList = "tools/list"
	MethodToolsCall = "tools/call"
)

// Request is a JSON-RPC 2.0 request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no id.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error is
// set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string { return e.Message }

// Notification is a server-initiated JSON-RPC message without an id.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// ListToolsResult is the result of tools/list.
type ListToolsResult struct {
	Tools []tools.Descriptor `json:"tools"`
}

// CallToolParams are the params of tools/call.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments tools.Arguments `json:"arguments"`
}

// ParseRequest decodes one JSON-RPC message.
func ParseRequest(data []byte) (*Request, *RPCError) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &RPCError{Code: CodeInternalError, Message: "empty request"}
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &RPCError{Code: CodeInternalError, Message: fmt.Sprintf("invalid JSON-RPC message: %v", err)}
	}
	return &req, nil
}

// NewResult builds a success response for id.
func NewResult(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: Version, ID: id, Result: result}
}

// NewErrorResponse builds an error response for id.
func NewErrorResponse(id json.RawMessage, rpcErr *RPCError) *Response {
	return &Response{JSONRPC: Version, ID: id, Error: rpcErr}
}

// HandleMessage parses data and handles it. It always returns a response,
// including for notifications and unparseable input.
func (d *Dispatcher) HandleMessage(ctx context.Context, data []byte) *Response {
	req, rpcErr := ParseRequest(data)
	if rpcErr != nil {
		d.metrics.ObserveRPC(TransportFrom(ctx), "invalid")
		return NewErrorResponse(nil, rpcErr)
	}
	return d.Handle(ctx, req)
}

// Handle dispatches a decoded request. Unknown methods and unknown tools map
// to -32601; every other failure maps to -32603.
func (d *Dispatcher) Handle(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case MethodToolsList:
		d.metrics.ObserveRPC(TransportFrom(ctx), req.Method)
		return NewResult(req.ID, ListToolsResult{Tools: d.ListTools()})

	case MethodToolsCall:
		d.metrics.ObserveRPC(TransportFrom(ctx), req.Method)
		var params CallToolParams
		if len(req.Params) > 0 && !bytes.Equal(req.Params, []byte("null")) {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return NewErrorResponse(req.ID, &RPCError{
					Code:    CodeInternalError,
					Message: fmt.Sprintf("invalid params: %v", err),
				})
			}
		}
		res, err := d.Call(ctx, params.Name, params.Arguments)
		if err != nil {
			return NewErrorResponse(req.ID, ToRPCError(err))
		}
		return NewResult(req.ID, res)

	default:
		d.metrics.ObserveRPC(TransportFrom(ctx), "unknown")
		return NewErrorResponse(req.ID, &RPCError{
			Code:    CodeMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		})
	}
}

// ToRPCError converts a dispatcher error into its JSON-RPC form.
func ToRPCError(err error) *RPCError {
	var te *tools.Error
	if !errors.As(err, &te) {
		return &RPCError{Code: CodeInternalError, Message: err.Error()}
	}
	code := CodeInternalError
	if te.Kind == tools.KindMethodNotFound {
		code = CodeMethodNotFound
	}
	return &RPCError{
		Code:    code,
		Message: te.Message,
		Data:    map[string]string{"kind": te.Kind.String()},
	}
}
