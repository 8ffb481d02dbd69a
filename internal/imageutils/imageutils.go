// Package imageutils implements the save_base64_image tool: decode base64
// image data received from another MCP tool and write it to disk.
package imageutils

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"devfactory/internal/logging"
	"devfactory/internal/mcpserver"
	"devfactory/pkg/fileops"

	"github.com/h2non/filetype"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	ServerName   = "image-utils"
	SaveToolName = "save_base64_image"

	defaultMIMEType = "application/octet-stream"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/[a-zA-Z+]+;base64,`)

// SaveResult is the JSON document returned as the tool's text content.
type SaveResult struct {
	Saved        bool   `json:"saved"`
	AbsolutePath string `json:"absolutePath"`
	SizeBytes    int    `json:"sizeBytes"`
	MIMEType     string `json:"mimeType"`
}

// Saver writes decoded images relative to a fixed base directory.
type Saver struct {
	baseDir string
	logger  *logging.AppLogger
}

// NewSaver returns a Saver resolving relative paths against baseDir, normally
// the working directory captured at startup.
func NewSaver(baseDir string, logger *logging.AppLogger) *Saver {
	return &Saver{baseDir: baseDir, logger: logger}
}

// Tools returns the single save_base64_image tool.
func (s *Saver) Tools() []mcpserver.ServerTool {
	tool := mcp.NewTool(SaveToolName,
		mcp.WithDescription("Decodes a base64 string and saves it to disk as a binary file. "+
			"Use it to persist screenshots received from Figma MCP or other sources. "+
			"Missing parent directories are created."),
		mcp.WithString("base64", mcp.Required(), mcp.Description(
			"Base64 image data without the data:image/...;base64, prefix. "+
				"A prefix, if present, is stripped automatically.")),
		mcp.WithString("filePath", mcp.Required(), mcp.Description(
			"Where to save the file. Absolute, or relative to the working directory. "+
				"For example: ai/tasks/task-01-feature/design_context/button_screenshot.png")),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
	return []mcpserver.ServerTool{{Tool: tool, Handler: s.handleSave}}
}

func (s *Saver) handleSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	data, _ := args["base64"].(string)
	filePath, _ := args["filePath"].(string)
	if data == "" || filePath == "" {
		return mcp.NewToolResultError(`Both "base64" and "filePath" are required.`), nil
	}

	decoded, err := DecodeBase64(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid base64 data: %v", err)), nil
	}

	result, err := s.Save(filePath, decoded)
	if err != nil {
		var pathErr *invalidPathError
		if errors.As(err, &pathErr) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	text, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(text)), nil
}

type invalidPathError struct {
	err error
}

func (e *invalidPathError) Error() string { return fmt.Sprintf("Invalid filePath: %v", e.err) }
func (e *invalidPathError) Unwrap() error { return e.err }

// Save writes data to filePath, creating parent directories, and reports
// where it went.
func (s *Saver) Save(filePath string, data []byte) (SaveResult, error) {
	absPath, err := fileops.ResolvePath(s.baseDir, filePath)
	if err != nil {
		return SaveResult{}, &invalidPathError{err: err}
	}
	if inside, err := fileops.IsWithinDirectory(absPath, s.baseDir); err == nil && !inside {
		s.logger.Warn("Saving outside the working directory", "path", absPath, "base", s.baseDir)
	}

	if err := fileops.EnsureDirectoryExists(filepath.Dir(absPath)); err != nil {
		return SaveResult{}, err
	}
	if err := fileops.AtomicWriteFile(absPath, data, 0644); err != nil {
		return SaveResult{}, fmt.Errorf("failed to save %s: %w", absPath, err)
	}

	mimeType := DetectMIMEType(data)
	s.logger.Info("Image saved", "path", absPath, "bytes", len(data), "mime", mimeType)

	return SaveResult{
		Saved:        true,
		AbsolutePath: absPath,
		SizeBytes:    len(data),
		MIMEType:     mimeType,
	}, nil
}

// DecodeBase64 strips an optional data URL prefix and decodes the rest.
// Whitespace is ignored, and both the standard and URL-safe alphabets are
// accepted with or without padding.
func DecodeBase64(data string) ([]byte, error) {
	cleaned := dataURLPrefix.ReplaceAllString(data, "")
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, cleaned)

	if cleaned == "" {
		return nil, errors.New("no data after removing prefix")
	}

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var firstErr error
	for _, enc := range encodings {
		decoded, err := enc.DecodeString(cleaned)
		if err == nil {
			return decoded, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// DetectMIMEType sniffs the file type from its magic bytes.
func DetectMIMEType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || kind.MIME.Value == "" {
		return defaultMIMEType
	}
	return kind.MIME.Value
}
