package filemanager

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// markdownExtensions contains supported markdown file extensions
var markdownExtensions = []string{
	".md", ".mdown", ".mkdn", ".mkd", ".markdown",
}

// ListMarkdown returns the markdown files directly inside the docs root,
// sorted by name. Subdirectories and hidden files are skipped.
func (fm *FileManager) ListMarkdown() ([]FileItem, error) {
	entries, err := fs.ReadDir(fm.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("failed to scan docs directory: %w", err)
	}

	var result []FileItem
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !isMarkdownFile(name) {
			continue
		}
		result = append(result, FileItem{Name: name, Path: name})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	fm.logger.Debug("Scanned docs directory for markdown files", "fileCount", len(result))
	return result, nil
}

// isMarkdownFile checks if a filename has a markdown extension.
func isMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(markdownExtensions, ext)
}
