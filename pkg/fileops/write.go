package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to path atomically. The destination either
// appears with the full content or is left untouched.
//
// The function uses a temporary file approach:
//  1. Creates a uniquely named temporary file in the destination directory
//  2. Writes all data and syncs it to disk
//  3. Applies perm to the temporary file
//  4. Atomically renames the temporary file to the final destination
//
// Parameters:
//   - path: Destination file path; its directory must already exist
//   - data: Bytes to write
//   - perm: Permission bits of the final file
//
// Returns:
//   - error: Creation, write, sync or rename errors. The temporary file is
//     removed on every failure path.
//
// Usage example:
//
//	if err := fileops.AtomicWriteFile("/tmp/out/logo.png", pngBytes, 0644); err != nil {
//	    return fmt.Errorf("save failed: %w", err)
//	}
//
// Note: existing files are overwritten without warning.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()

	var written bool
	defer func() {
		if !written {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write file contents: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tempFile.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	written = true
	return nil
}

// EnsureDirectoryExists creates a directory and all missing parents, like
// `mkdir -p`. Safe to call repeatedly. Directories get 0755.
func EnsureDirectoryExists(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
