// Package render formats tool definitions and tool results for a terminal.
// It backs the tools and call commands of devfactory-mcp; the stdio server
// itself never renders anything.
package render

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolList renders tool definitions in the given order: styled name, wrapped
// description and one line per input property. Required properties are
// marked with an asterisk.
func ToolList(server string, tools []mcp.Tool, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s: %d tools", server, len(tools))))
	b.WriteString("\n")

	for _, tool := range tools {
		b.WriteString(ToolNameStyle.Render(tool.Name))
		if tool.Annotations.ReadOnlyHint != nil && *tool.Annotations.ReadOnlyHint {
			b.WriteString(" " + SubtitleStyle.Render("(read-only)"))
		}
		b.WriteString("\n")

		var body strings.Builder
		if tool.Description != "" {
			body.WriteString(Wrap(tool.Description, width-2))
			body.WriteString("\n")
		}
		for _, line := range paramLines(tool.InputSchema) {
			body.WriteString(Wrap(line, width-2))
			body.WriteString("\n")
		}
		b.WriteString(BodyStyle.Render(strings.TrimRight(body.String(), "\n")))
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func paramLines(schema mcp.ToolInputSchema) []string {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		label := name
		if slices.Contains(schema.Required, name) {
			label += "*"
		}

		line := ParamStyle.Render(label)
		if prop, ok := schema.Properties[name].(map[string]any); ok {
			if typ, ok := prop["type"].(string); ok {
				line += " " + SubtitleStyle.Render(typ)
			}
			if desc, ok := prop["description"].(string); ok && desc != "" {
				line += " " + desc
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// ResultText joins the text content blocks of a tool result. Non-text blocks
// are summarised by type.
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	parts := make([]string, 0, len(result.Content))
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, text.Text)
			continue
		}
		parts = append(parts, fmt.Sprintf("[%T content omitted]", content))
	}
	return strings.Join(parts, "\n\n")
}

// ToolResult renders a tool result as markdown. Results flagged as errors
// are printed as a single styled error block instead.
func ToolResult(result *mcp.CallToolResult, style string, width int) (string, error) {
	text := ResultText(result)
	if result != nil && result.IsError {
		return ErrorStyle.Render("Error:") + " " + Wrap(text, width) + "\n", nil
	}
	return Markdown(text, style, width)
}
