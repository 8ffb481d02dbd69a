package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"devfactory/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// Config describes the server identity reported by initialize.
type Config struct {
	Name         string
	Version      string
	Instructions string
	Logger       *logging.AppLogger
}

// Server answers JSON-RPC requests read line by line from in and writes one
// response line per answered request to out.
type Server struct {
	reader       *LineReader
	writer       *LineWriter
	registry     *Registry
	info         mcp.Implementation
	instructions string
	logger       *logging.AppLogger

	inflight sync.WaitGroup

	mu        sync.Mutex
	writeErr  error
	writeOnce sync.Once
}

// New creates a server over the given streams. The registry must be fully
// built; the server never modifies it.
func New(in io.Reader, out io.Writer, registry *Registry, cfg Config) *Server {
	if cfg.Name == "" {
		cfg.Name = "devfactory-mcp"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetDefault()
	}
	if registry == nil {
		registry = &Registry{}
	}

	return &Server{
		reader:       NewLineReader(in),
		writer:       NewLineWriter(out),
		registry:     registry,
		info:         mcp.Implementation{Name: cfg.Name, Version: cfg.Version},
		instructions: cfg.Instructions,
		logger:       cfg.Logger,
	}
}

// Serve reads until EOF or until ctx is done. At EOF it waits for every
// started tool call to write its response and returns nil. A failed write
// to the output stream ends Serve with that error.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("MCP server running on stdio", "server", s.info.Name, "tools", s.registry.Len())

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Context done, stopping read loop", "reason", err)
			return err
		}
		if err := s.writeFailure(); err != nil {
			return err
		}

		line, err := s.reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("Input closed, waiting for in-flight tool calls")
				s.inflight.Wait()
				return s.writeFailure()
			}
			s.logger.Error("Failed to read message", "error", err)
			return fmt.Errorf("failed to read message: %w", err)
		}

		s.logger.Debug("Message received", "bytes", len(line))
		s.handleLine(ctx, line)
	}
}

func (s *Server) handleLine(ctx context.Context, line string) {
	start := time.Now()

	req, err := DecodeRequest([]byte(line))
	if err != nil {
		rpcErr := ParseError()
		var decErr *DecodeError
		if errors.As(err, &decErr) {
			rpcErr = decErr.RPCError()
		}
		s.logger.Debug("Rejected message", "error", err)
		s.send("", "", start, Response{ID: mcp.NewRequestId(nil), Error: rpcErr})
		return
	}

	s.dispatch(ctx, req, start)
}

func (s *Server) dispatch(ctx context.Context, req Request, start time.Time) {
	if req.IsNotification() {
		s.logger.Debug("Notification received", "method", req.Method)
		return
	}

	id := *req.ID
	if req.JSONRPC != "" && req.JSONRPC != mcp.JSONRPC_VERSION {
		s.send(req.Method, "", start, Response{ID: id, Error: InvalidRequest(`jsonrpc must be "2.0"`)})
		return
	}
	if strings.TrimSpace(req.Method) == "" {
		s.send(req.Method, "", start, Response{ID: id, Error: InvalidRequest("method is required")})
		return
	}

	method := ParseMethod(req.Method)
	switch method {
	case MethodInitialize:
		s.logger.DebugObject("initialize params", string(req.Params))
		s.send(req.Method, "", start, Response{ID: id, Result: s.initializeResult()})
	case MethodInitialized:
		// Acknowledged, never answered.
		s.logger.Debug("Client initialized")
	case MethodToolsList:
		s.send(req.Method, "", start, Response{ID: id, Result: mcp.ListToolsResult{Tools: s.registry.Tools()}})
	case MethodToolsCall:
		s.startToolCall(ctx, id, req.Params, start)
	case MethodPing:
		s.send(req.Method, "", start, Response{ID: id, Result: mcp.EmptyResult{}})
	case MethodUnknown:
		s.send(req.Method, "", start, Response{ID: id, Error: MethodNotFound(req.Method)})
	}
}

func (s *Server) initializeResult() mcp.InitializeResult {
	caps := mcp.ServerCapabilities{}
	caps.Tools = &struct {
		ListChanged bool `json:"listChanged,omitempty"`
	}{}

	return mcp.InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    caps,
		ServerInfo:      s.info,
		Instructions:    s.instructions,
	}
}

// startToolCall validates the call synchronously and runs the handler in
// its own goroutine, so the read loop can move on to the next line.
func (s *Server) startToolCall(ctx context.Context, id mcp.RequestId, raw json.RawMessage, start time.Time) {
	method := MethodToolsCall.String()

	params, err := decodeCallParams(raw)
	if err != nil {
		s.send(method, "", start, Response{ID: id, Error: InvalidParams(err.Error())})
		return
	}
	if _, ok := s.registry.Lookup(params.Name); !ok {
		s.send(method, params.Name, start, Response{ID: id, Error: UnknownTool(params.Name)})
		return
	}

	request := mcp.CallToolRequest{Params: params}
	request.Method = method

	// Calls are never cancelled once started.
	callCtx := context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		result, err := s.registry.Invoke(callCtx, request)
		if err != nil {
			rpcErr := InternalError(err)
			if errors.Is(err, ErrUnknownTool) {
				rpcErr = UnknownTool(params.Name)
			} else {
				rpcErr.Data = map[string]string{"tool": params.Name}
			}
			s.send(method, params.Name, start, Response{ID: id, Error: rpcErr})
			return
		}
		if result.IsError {
			s.logger.Debug("Tool reported failure", "tool", params.Name, "id", id.String())
		}
		s.send(method, params.Name, start, Response{ID: id, Result: result})
	}()
}

func decodeCallParams(raw json.RawMessage) (mcp.CallToolParams, error) {
	var params mcp.CallToolParams
	if len(raw) == 0 {
		return params, errors.New("missing params")
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("params must be an object with a string name: %w", err)
	}
	if strings.TrimSpace(params.Name) == "" {
		return params, errors.New("missing tool name")
	}
	return params, nil
}

// send encodes and writes one response. It is called from the read loop and
// from tool goroutines; LineWriter serialises the physical writes.
func (s *Server) send(method, tool string, start time.Time, resp Response) {
	errorCode := ""
	if resp.Error != nil {
		errorCode = strconv.Itoa(resp.Error.Code)
	}
	s.logger.LogCall(method, tool, resp.ID.String(), start, errorCode)

	payload, err := EncodeResponse(resp)
	if err != nil {
		s.logger.Error("Failed to encode response", "method", method, "tool", tool, "error", err)
		payload, err = EncodeResponse(Response{ID: resp.ID, Error: InternalError(err)})
		if err != nil {
			return
		}
	}

	if err := s.writer.WriteLine(payload); err != nil {
		s.logger.Error("Failed to write response", "error", err)
		s.writeOnce.Do(func() {
			s.mu.Lock()
			s.writeErr = fmt.Errorf("failed to write response: %w", err)
			s.mu.Unlock()
		})
	}
}

func (s *Server) writeFailure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeErr
}
