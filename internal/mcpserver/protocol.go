package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ProtocolVersion is the MCP revision advertised by initialize.
const ProtocolVersion = "2024-11-05"

// Request is one inbound JSON-RPC envelope.
//
// ID is nil when the "id" member was absent, which makes the request a
// notification. An explicit "id": null decodes to a non-nil RequestId whose
// IsNil reports true; such a request is answered with a null id.
type Request struct {
	JSONRPC string
	ID      *mcp.RequestId
	Method  string
	Params  json.RawMessage
}

// IsNotification reports whether the request must go unanswered.
func (r Request) IsNotification() bool {
	return r.ID == nil
}

// ResponseID returns the id to echo back, null for notifications.
func (r Request) ResponseID() mcp.RequestId {
	if r.ID == nil {
		return mcp.NewRequestId(nil)
	}
	return *r.ID
}

// NewRequest builds a request envelope with the given id. Integer ids are
// stored as int64, the type the decoder produces.
func NewRequest(id any, method string, params json.RawMessage) Request {
	switch v := id.(type) {
	case int:
		id = int64(v)
	case int32:
		id = int64(v)
	}
	reqID := mcp.NewRequestId(id)
	return Request{JSONRPC: mcp.JSONRPC_VERSION, ID: &reqID, Method: method, Params: params}
}

// NewNotification builds a request envelope without an id.
func NewNotification(method string, params json.RawMessage) Request {
	return Request{JSONRPC: mcp.JSONRPC_VERSION, Method: method, Params: params}
}

// Response is one outbound envelope. Exactly one of Result and Error is set.
// After DecodeResponse, Result holds the raw JSON of the result member.
type Response struct {
	ID     mcp.RequestId
	Result any
	Error  *Error
}

// Error is a protocol-level failure carried in the "error" member.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

func newError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// ParseError is the -32700 response body. The id is always null.
func ParseError() *Error {
	return newError(mcp.PARSE_ERROR, "Parse error")
}

// InvalidRequest is the -32600 response body.
func InvalidRequest(reason string) *Error {
	msg := "Invalid Request"
	if reason != "" {
		msg += ": " + reason
	}
	return newError(mcp.INVALID_REQUEST, msg)
}

// MethodNotFound is the -32601 response for an unsupported method.
func MethodNotFound(method string) *Error {
	return newError(mcp.METHOD_NOT_FOUND, "Method not found: "+method)
}

// UnknownTool is the -32601 response for tools/call with an unregistered name.
func UnknownTool(name string) *Error {
	return newError(mcp.METHOD_NOT_FOUND, "Unknown tool: "+name)
}

// InvalidParams is the -32602 response body.
func InvalidParams(reason string) *Error {
	return newError(mcp.INVALID_PARAMS, "Invalid params: "+reason)
}

// InternalError is the -32603 response for a failed handler. The message is
// the failure description so clients can diagnose it.
func InternalError(err error) *Error {
	return newError(mcp.INTERNAL_ERROR, err.Error())
}
