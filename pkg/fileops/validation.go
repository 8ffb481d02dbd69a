package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateEntryName checks that name refers to a single entry inside a
// directory: no separators, no traversal and no control characters.
//
// Parameters:
//   - name: The bare name to validate, e.g. "Button" or "colors"
//
// Returns:
//   - error: Validation error describing the first problem found
//
// The function rejects:
//   - Empty or whitespace-only names
//   - Names containing "/" or "\" (on every platform)
//   - "." and any name containing ".."
//   - NUL and other control characters
//
// Usage example:
//
//	if err := fileops.ValidateEntryName(component); err != nil {
//	    return fmt.Errorf("invalid component name: %w", err)
//	}
func ValidateEntryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name must not contain path separators: %q", name)
	}
	if name == "." || strings.Contains(name, "..") {
		return fmt.Errorf("path traversal not allowed: %q", name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("name contains control characters: %q", name)
		}
	}
	return nil
}

// ResolvePath turns p into a clean absolute path. Relative paths are joined
// onto baseDir; absolute paths are kept.
//
// Parameters:
//   - baseDir: Directory relative paths are resolved against. It is made
//     absolute first, so a relative baseDir follows the process CWD.
//   - p: User-supplied path
//
// Returns:
//   - string: Absolute, cleaned path
//   - error: Empty input, NUL bytes or a base directory that cannot be resolved
//
// Usage example:
//
//	abs, err := fileops.ResolvePath("/work/project", "assets/logo.png")
//	// abs == "/work/project/assets/logo.png"
func ResolvePath(baseDir, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("path contains NUL byte")
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve base directory: %w", err)
	}
	return filepath.Join(absBase, p), nil
}

// IsWithinDirectory reports whether path is baseDir itself or lies below it
// after both are made absolute. It does not touch the filesystem.
func IsWithinDirectory(path, baseDir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("cannot resolve path: %w", err)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return false, fmt.Errorf("cannot resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return false, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return true, nil
}

// ValidateSizeLimit checks a byte count against maxSize.
//
// Parameters:
//   - name: Used in the error message only
//   - size: Size in bytes
//   - maxSize: Maximum allowed size in bytes, must be positive
//
// Usage example:
//
//	if err := fileops.ValidateSizeLimit(info.Name(), info.Size(), 5*1024*1024); err != nil {
//	    return err
//	}
func ValidateSizeLimit(name string, size, maxSize int64) error {
	if maxSize <= 0 {
		return fmt.Errorf("invalid size limit: %d", maxSize)
	}
	if size > maxSize {
		return fmt.Errorf("%s: size %d bytes exceeds limit %d bytes", name, size, maxSize)
	}
	return nil
}

// ValidateDirectory checks that path exists and is a directory.
func ValidateDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}
