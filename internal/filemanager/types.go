package filemanager

import (
	"path/filepath"
	"strings"
)

// FileItem is one document found in the docs root. Path is relative to the
// root.
type FileItem struct {
	Name string
	Path string
}

// Stem returns the file name without its extension, e.g. "Button" for
// "Button.md".
func (i FileItem) Stem() string {
	return strings.TrimSuffix(i.Name, filepath.Ext(i.Name))
}
