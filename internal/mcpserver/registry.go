package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ErrUnknownTool is returned by Invoke for a name that was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// ToolHandlerFunc runs one tool call. Domain failures belong in the result
// with IsError set; a returned error becomes a -32603 protocol error.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ServerTool pairs a tool definition with its handler.
type ServerTool struct {
	Tool    mcp.Tool
	Handler ToolHandlerFunc
}

// Registry is the ordered set of tools a server exposes. Build it before
// the server starts; it is only read afterwards, so lookups need no lock.
type Registry struct {
	order []string
	tools map[string]ServerTool
}

// NewRegistry registers tools in order and fails on the first bad entry.
func NewRegistry(tools ...ServerTool) (*Registry, error) {
	r := &Registry{tools: make(map[string]ServerTool, len(tools))}
	for _, t := range tools {
		if err := r.Register(t.Tool, t.Handler); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds one tool. Empty names, nil handlers and duplicate names are
// configuration errors.
func (r *Registry) Register(tool mcp.Tool, handler ToolHandlerFunc) error {
	name := strings.TrimSpace(tool.Name)
	if name == "" {
		return errors.New("tool name cannot be empty")
	}
	if name != tool.Name {
		return fmt.Errorf("tool name %q has surrounding whitespace", tool.Name)
	}
	if handler == nil {
		return fmt.Errorf("tool %q has no handler", name)
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("duplicate tool name %q", name)
	}

	if r.tools == nil {
		r.tools = make(map[string]ServerTool)
	}
	r.tools[name] = ServerTool{Tool: tool, Handler: handler}
	r.order = append(r.order, name)
	return nil
}

// Tools returns the definitions in registration order.
func (r *Registry) Tools() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Tool)
	}
	return out
}

func (r *Registry) Lookup(name string) (ServerTool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Invoke runs the named tool. A panicking handler is recovered and reported
// as an error so a single tool can never take the server down.
func (r *Registry) Invoke(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	name := request.Params.Name
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("tool %s panicked: %v", name, p)
		}
	}()

	result, err = t.Handler(ctx, request)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("tool %s returned no result", name)
	}
	return result, nil
}
