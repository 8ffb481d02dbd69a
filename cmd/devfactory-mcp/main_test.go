package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"devfactory/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolArgs(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{
			name:  "strings",
			pairs: []string{"name=Button", "query=form field"},
			want:  map[string]any{"name": "Button", "query": "form field"},
		},
		{
			name:  "json values",
			pairs: []string{"limit:=10", "strict:=true", "tags:=[\"a\"]"},
			want:  map[string]any{"limit": float64(10), "strict": true, "tags": []any{"a"}},
		},
		{
			name:  "value containing separators",
			pairs: []string{"filePath=out/a=b:=c.png"},
			want:  map[string]any{"filePath": "out/a=b:=c.png"},
		},
		{
			name:  "empty value",
			pairs: []string{"name="},
			want:  map[string]any{"name": ""},
		},
		{
			name:  "no arguments",
			pairs: nil,
			want:  map[string]any{},
		},
		{name: "missing separator", pairs: []string{"Button"}, wantErr: true},
		{name: "empty key", pairs: []string{"=Button"}, wantErr: true},
		{name: "bad json", pairs: []string{"limit:={"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseToolArgs(tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func writeKitDocs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"overview.md": "# UI kit\n\n## Button\nPrimary action.\n\n## TextField\nSingle line input.\n",
		"Button.md":   "# Button\n\nProps: variant, size.\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestKitToolsCommand(t *testing.T) {
	dir := writeKitDocs(t)

	out, err := execute(t, "kit", "tools", "--docs-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "kit-docs: 3 tools")
	assert.Contains(t, out, "list_kit_components")
	assert.Contains(t, out, "get_kit_component_doc")
	assert.Contains(t, out, "search_kit_components")
}

func TestKitCallCommand(t *testing.T) {
	dir := writeKitDocs(t)

	out, err := execute(t, "kit", "call", "get_kit_component_doc", "name=Button", "--plain", "--docs-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Props: variant, size.")

	out, err = execute(t, "kit", "call", "get_kit_component_doc", "name=Nope", "--plain", "--docs-dir", dir)
	assert.Error(t, err)
	assert.Contains(t, out, `Component "Nope" not found`)
}

func TestCallUnknownTool(t *testing.T) {
	_, err := execute(t, "image-utils", "call", "no_such_tool")
	assert.ErrorContains(t, err, "unknown tool")
}

func TestDocsServerFailsWithoutDocsDir(t *testing.T) {
	_, err := execute(t, "theme", "tools", "--docs-dir", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "Docs directory not found")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "devfactory-mcp dev\n", out)
}

func TestDebugLogKeepsEveryLine(t *testing.T) {
	docsDir := writeKitDocs(t)
	workDir := t.TempDir()
	t.Chdir(workDir)

	previous := logging.GetDefault()
	t.Cleanup(func() {
		debug = false
		logging.SetDefault(previous)
	})

	_, err := execute(t, "--debug", "kit", "tools", "--docs-dir", docsDir)
	require.NoError(t, err)
	assert.True(t, logging.GetDefault().IsDebug())

	content, err := os.ReadFile(filepath.Join(workDir, logging.LogFileName))
	require.NoError(t, err)
	output := string(content)

	assert.Contains(t, output, "Debug logging enabled")
	assert.Contains(t, output, "Using docs directory from flag")
	assert.Contains(t, output, "Opened docs root")

	lineStart := regexp.MustCompile(`^\d{1,2}:\d{2}(AM|PM) `)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Regexp(t, lineStart, line)
	}
}

func TestCallOutputFollowsCommandWriter(t *testing.T) {
	dir := writeKitDocs(t)

	plain, err := execute(t, "kit", "call", "get_kit_component_doc", "name=Button", "--plain", "--docs-dir", dir)
	require.NoError(t, err)

	styled, err := execute(t, "kit", "call", "get_kit_component_doc", "name=Button", "--plain=false", "--docs-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, styled, "Props: variant, size.")
	assert.Equal(t, plain, styled, "a non-terminal writer renders like --plain")

	assert.Equal(t, 80, terminalWidth(&bytes.Buffer{}))
}
