package mcpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DecodeError reports a line that could not be turned into a Request. It
// never carries an id: nothing in the line can be trusted.
type DecodeError struct {
	// Invalid is set when the line is well-formed JSON but not a request
	// object (a batch array, a bare scalar, a non-string method...).
	Invalid bool
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Invalid {
		return fmt.Sprintf("invalid request: %v", e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RPCError maps the failure to its protocol error body.
func (e *DecodeError) RPCError() *Error {
	if e.Invalid {
		return InvalidRequest(e.Err.Error())
	}
	return ParseError()
}

var errMalformedJSON = errors.New("malformed JSON")

type wireRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *mcp.RequestId  `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// DecodeRequest parses one line into a Request.
func DecodeRequest(line []byte) (Request, error) {
	line = bytes.TrimSpace(line)
	if !json.Valid(line) {
		return Request{}, &DecodeError{Err: errMalformedJSON}
	}
	if len(line) == 0 || line[0] != '{' {
		return Request{}, &DecodeError{Invalid: true, Err: errors.New("request must be a JSON object")}
	}

	// Decode member by member so an absent id can be told apart from "id": null.
	var members map[string]json.RawMessage
	if err := json.Unmarshal(line, &members); err != nil {
		return Request{}, &DecodeError{Invalid: true, Err: err}
	}

	var req Request
	if raw, ok := members["jsonrpc"]; ok {
		if err := json.Unmarshal(raw, &req.JSONRPC); err != nil {
			return Request{}, &DecodeError{Invalid: true, Err: errors.New("jsonrpc must be a string")}
		}
	}
	if raw, ok := members["method"]; ok {
		if err := json.Unmarshal(raw, &req.Method); err != nil {
			return Request{}, &DecodeError{Invalid: true, Err: errors.New("method must be a string")}
		}
	}
	if raw, ok := members["id"]; ok {
		var id mcp.RequestId
		if err := json.Unmarshal(raw, &id); err != nil {
			return Request{}, &DecodeError{Invalid: true, Err: err}
		}
		req.ID = &id
	}
	if raw, ok := members["params"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		req.Params = raw
	}

	return req, nil
}

// EncodeRequest renders a Request as a single JSON line (without the newline).
func EncodeRequest(req Request) ([]byte, error) {
	wire := wireRequest{
		JSONRPC: req.JSONRPC,
		ID:      req.ID,
		Method:  req.Method,
		Params:  req.Params,
	}
	if wire.JSONRPC == "" {
		wire.JSONRPC = mcp.JSONRPC_VERSION
	}
	out, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return out, nil
}

// EncodeResponse renders a Response using mcp-go's envelope types. A nil
// Result on a success response is sent as an empty object.
func EncodeResponse(resp Response) ([]byte, error) {
	var v any
	if resp.Error != nil {
		env := mcp.JSONRPCError{JSONRPC: mcp.JSONRPC_VERSION, ID: resp.ID}
		env.Error.Code = resp.Error.Code
		env.Error.Message = resp.Error.Message
		env.Error.Data = resp.Error.Data
		v = env
	} else {
		result := resp.Result
		if result == nil {
			result = mcp.EmptyResult{}
		}
		v = mcp.JSONRPCResponse{JSONRPC: mcp.JSONRPC_VERSION, ID: resp.ID, Result: result}
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return out, nil
}

// DecodeResponse parses one response line. Result is left as json.RawMessage.
func DecodeResponse(line []byte) (Response, error) {
	var wire struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      mcp.RequestId   `json:"id"`
		Result  json.RawMessage `json:"result"`
		Error   *Error          `json:"error"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(line), &wire); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	resp := Response{ID: wire.ID, Error: wire.Error}
	if wire.Error == nil {
		if wire.Result == nil {
			return Response{}, errors.New("response has neither result nor error")
		}
		resp.Result = wire.Result
	}
	return resp, nil
}
