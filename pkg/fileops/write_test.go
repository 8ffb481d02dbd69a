package fileops

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func readFileContent(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("creates new file", func(t *testing.T) {
		path := filepath.Join(dir, "new.bin")
		if err := AtomicWriteFile(path, []byte("hello"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
		if got := readFileContent(t, path); got != "hello" {
			t.Errorf("Content mismatch. Expected %q, got %q", "hello", got)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(dir, "existing.txt")
		if err := os.WriteFile(path, []byte("original content that is longer"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
		if got := readFileContent(t, path); got != "new" {
			t.Errorf("Content mismatch. Expected %q, got %q", "new", got)
		}
	})

	t.Run("empty data", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		if err := AtomicWriteFile(path, nil, 0644); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() != 0 {
			t.Errorf("Expected empty file, got %d bytes", info.Size())
		}
	})

	t.Run("applies permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not enforced on Windows")
		}
		path := filepath.Join(dir, "perm.txt")
		if err := AtomicWriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
		}
	})

	t.Run("missing directory fails", func(t *testing.T) {
		path := filepath.Join(dir, "does", "not", "exist.txt")
		if err := AtomicWriteFile(path, []byte("x"), 0644); err == nil {
			t.Error("Expected error for missing parent directory")
		}
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("Temporary file left behind: %s", e.Name())
			}
		}
	})

	t.Run("target is a directory", func(t *testing.T) {
		target := filepath.Join(dir, "a-dir")
		if err := os.Mkdir(target, 0755); err != nil {
			t.Fatal(err)
		}
		if err := AtomicWriteFile(target, []byte("x"), 0644); err == nil {
			t.Error("Expected error when target is a directory")
		}
	})
}

func TestEnsureDirectoryExists(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "a", "b", "c")

	if err := EnsureDirectoryExists(nested); err != nil {
		t.Fatalf("EnsureDirectoryExists failed: %v", err)
	}
	if err := EnsureDirectoryExists(nested); err != nil {
		t.Fatalf("Second call failed: %v", err)
	}
	if err := ValidateDirectory(nested); err != nil {
		t.Errorf("Directory not created: %v", err)
	}

	file := filepath.Join(base, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDirectoryExists(filepath.Join(file, "child")); err == nil {
		t.Error("Expected error when a parent is a regular file")
	}
}
