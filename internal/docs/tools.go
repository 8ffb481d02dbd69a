package docs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devfactory/internal/mcpserver"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tools returns the list, get and search tools of profile p over c.
func Tools(p Profile, c *Catalog) []mcpserver.ServerTool {
	h := &handlers{profile: p, catalog: c}

	readOnly := []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	}

	list := mcp.NewTool(p.ListTool, append([]mcp.ToolOption{
		mcp.WithDescription(p.ListDescription),
	}, readOnly...)...)

	get := mcp.NewTool(p.GetTool, append([]mcp.ToolOption{
		mcp.WithDescription(p.GetDescription),
		mcp.WithString("name", mcp.Required(), mcp.Description(p.NameHint)),
	}, readOnly...)...)

	search := mcp.NewTool(p.SearchTool, append([]mcp.ToolOption{
		mcp.WithDescription(p.SearchDescription),
		mcp.WithString("query", mcp.Required(), mcp.Description(p.QueryHint)),
	}, readOnly...)...)

	return []mcpserver.ServerTool{
		{Tool: list, Handler: h.list},
		{Tool: get, Handler: h.get},
		{Tool: search, Handler: h.search},
	}
}

type handlers struct {
	profile Profile
	catalog *Catalog
}

func (h *handlers) list(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	overview, err := h.catalog.Overview()
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(overview), nil
}

func (h *handlers) get(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(`Argument "name" is required.`), nil
	}

	doc, err := h.catalog.Doc(name)
	if err == nil {
		return mcp.NewToolResultText(doc), nil
	}
	if errors.Is(err, ErrInvalidName) {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid %s name \"%s\": %v", strings.ToLower(h.profile.Noun), name, err)), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	names, err := h.catalog.Names()
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("%s \"%s\" not found. Available %s: %s", h.profile.Noun, name, h.profile.Nouns, strings.Join(names, ", "))
	return mcp.NewToolResultError(msg), nil
}

func (h *handlers) search(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(`Argument "query" is required.`), nil
	}

	matches, err := h.catalog.Search(query)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results for \"%s\". Use %s to see all %s.", query, h.profile.ListTool, h.profile.Nouns)), nil
	}
	return mcp.NewToolResultText(FormatSearchResults(query, matches)), nil
}
