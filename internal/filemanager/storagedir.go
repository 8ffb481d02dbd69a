package filemanager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devfactory/internal/logging"

	"github.com/adrg/xdg"
)

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") && xdg.Home != "" {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}

// OpenDocsRoot opens dir as an os.Root. Every later read goes through the
// root, so names can never resolve outside dir, symlinks included.
func OpenDocsRoot(dir string, logger *logging.AppLogger) (*os.Root, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("docs directory cannot be empty")
	}

	expanded := ExpandPath(dir)
	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("docs directory does not exist: %s", expanded)
		}
		return nil, fmt.Errorf("cannot access docs directory: %w", err)
	}
	if !info.IsDir() {
		logger.Debug("Docs path exists but is not a directory", "path", expanded)
		return nil, fmt.Errorf("path exists but is not a directory: %s", expanded)
	}

	root, err := os.OpenRoot(expanded)
	if err != nil {
		return nil, fmt.Errorf("cannot create secure root: %w", err)
	}
	logger.Debug("Opened docs root", "path", expanded)
	return root, nil
}
