package filemanager

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"devfactory/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, files map[string]string) (*FileManager, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	logger, _ := logging.NewTestLogger()
	fm, err := NewFileManager(dir, logger)
	require.NoError(t, err)
	t.Cleanup(func() { fm.Close() })
	return fm, dir
}

func TestNewFileManagerErrors(t *testing.T) {
	logger, _ := logging.NewTestLogger()

	_, err := NewFileManager("", logger)
	assert.ErrorContains(t, err, "cannot be empty")

	_, err = NewFileManager(filepath.Join(t.TempDir(), "missing"), logger)
	assert.ErrorContains(t, err, "does not exist")

	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = NewFileManager(file, logger)
	assert.ErrorContains(t, err, "not a directory")
}

func TestReadFile(t *testing.T) {
	fm, dir := newTestManager(t, map[string]string{
		"overview.md":     "# Overview\n",
		"nested/Inner.md": "inner",
	})
	assert.Equal(t, dir, fm.GetDocsDir())

	data, err := fm.ReadFile("overview.md")
	require.NoError(t, err)
	assert.Equal(t, "# Overview\n", string(data))

	_, err = fm.ReadFile("Missing.md")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	_, err = fm.ReadFile("nested")
	assert.True(t, errors.Is(err, ErrNotFound), "directories read as not found, got %v", err)

	_, err = fm.ReadFile("../outside.md")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestReadFileSizeLimit(t *testing.T) {
	fm, _ := newTestManager(t, map[string]string{"big.md": strings.Repeat("a", 100)})
	fm.SetMaxFileSize(10)

	_, err := fm.ReadFile("big.md")
	assert.ErrorContains(t, err, "exceeds limit")
}

func TestReadFileSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on Windows")
	}
	outside := filepath.Join(t.TempDir(), "secret.md")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0644))

	fm, dir := newTestManager(t, nil)
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "link.md")))

	_, err := fm.ReadFile("link.md")
	assert.Error(t, err, "symlink pointing outside the root must not be readable")
}

func TestListMarkdown(t *testing.T) {
	fm, _ := newTestManager(t, map[string]string{
		"overview.md":    "o",
		"Button.md":      "b",
		"Accordion.MD":   "a",
		"notes.txt":      "n",
		".hidden.md":     "h",
		"sub/Deep.md":    "d",
		"guide.markdown": "g",
	})

	items, err := fm.ListMarkdown()
	require.NoError(t, err)

	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Accordion.MD", "Button.md", "guide.markdown", "overview.md"}, names)
	assert.Equal(t, "Accordion", items[0].Stem())
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))

	expanded := ExpandPath("~/docs")
	assert.False(t, strings.HasPrefix(expanded, "~"), "expected home expansion, got %s", expanded)
	assert.True(t, strings.HasSuffix(expanded, "docs"))
}

func TestOpenDocsRootLogsToGivenLogger(t *testing.T) {
	logger, buf := logging.NewTestLogger()

	root, err := OpenDocsRoot(t.TempDir(), logger)
	require.NoError(t, err)
	defer root.Close()

	assert.Contains(t, buf.String(), "Opened docs root")
}
