package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebug_DisabledInProduction(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.DebugLevel)

	appLogger := &AppLogger{
		logger: logger,
		debug:  false, // Production mode
	}

	appLogger.Debug("debug message that should not appear")

	output := buf.String()
	if strings.Contains(output, "debug message that should not appear") {
		t.Errorf("Expected debug message to be suppressed in production mode, got: %s", output)
	}
}

func TestNewAppLoggerWithOptions_Production(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewAppLoggerWithOptions(Options{Output: &buf, Prefix: "kit-docs"})
	require.NoError(t, err)
	assert.False(t, logger.IsDebug())

	logger.Info("info is below the production level")
	logger.Warn("docs directory looks empty", "dir", "/tmp/docs")

	output := buf.String()
	assert.NotContains(t, output, "info is below the production level")
	assert.Contains(t, output, "docs directory looks empty")
	assert.Contains(t, output, "kit-docs")
}

func TestNewAppLoggerWithOptions_DebugWritesFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewAppLoggerWithOptions(Options{Debug: true, LogDir: dir})
	require.NoError(t, err)
	assert.True(t, logger.IsDebug())

	logger.Debug("debug line", "key", "value")

	content, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Debug logging enabled")
	assert.Contains(t, string(content), "debug line")
}

func TestNewAppLoggerWithOptions_DebugBadDir(t *testing.T) {
	_, err := NewAppLoggerWithOptions(Options{Debug: true, LogDir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestNewAppLoggerWithOptions_SharedDebugFile(t *testing.T) {
	dir := t.TempDir()

	first, err := NewAppLoggerWithOptions(Options{Debug: true, LogDir: dir, Output: &bytes.Buffer{}, Prefix: "kit-docs"})
	require.NoError(t, err)
	first.Info("first logger before second opens", "step", 1)

	second, err := NewAppLoggerWithOptions(Options{Debug: true, LogDir: dir, Output: &bytes.Buffer{}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			first.Debug("from first", "n", i)
		}(i)
		go func(i int) {
			defer wg.Done()
			second.Debug("from second", "n", i)
		}(i)
	}
	wg.Wait()

	content, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	output := string(content)

	assert.Contains(t, output, "first logger before second opens")
	assert.Equal(t, 2, strings.Count(output, "Debug logging enabled"))
	assert.Equal(t, 20, strings.Count(output, "from first"))
	assert.Equal(t, 20, strings.Count(output, "from second"))
	lineStart := regexp.MustCompile(`^\d{1,2}:\d{2}(AM|PM) `)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Regexp(t, lineStart, line)
	}
}

func TestNewAppLoggerWithOptions_DebugErrorsReachOutput(t *testing.T) {
	var stderr bytes.Buffer
	logger, err := NewAppLoggerWithOptions(Options{Debug: true, LogDir: t.TempDir(), Output: &stderr})
	require.NoError(t, err)

	logger.Debug("only in the file")
	logger.Error("Docs directory not found", "dir", "/nope")

	assert.NotContains(t, stderr.String(), "only in the file")
	assert.Contains(t, stderr.String(), "Docs directory not found")
}

func TestNewAppLoggerWithOptions_CallerIsNotWrapper(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewAppLoggerWithOptions(Options{Debug: true, LogDir: dir, Output: &bytes.Buffer{}})
	require.NoError(t, err)

	logger.Info("caller check")

	content, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	var line string
	for _, l := range strings.Split(string(content), "\n") {
		if strings.Contains(l, "caller check") {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.Contains(t, line, "logging_test.go")
	assert.NotContains(t, line, "logging/logging.go")
}

func TestSetDefault(t *testing.T) {
	previous := GetDefault()
	t.Cleanup(func() { SetDefault(previous) })

	logger, buf := NewTestLogger()
	SetDefault(logger)

	Info("routed through the installed logger")
	Debug("debug too")
	assert.Same(t, logger, GetDefault())
	assert.Contains(t, buf.String(), "routed through the installed logger")
	assert.Contains(t, buf.String(), "debug too")
}

func TestLogCall(t *testing.T) {
	tests := []struct {
		name      string
		errorCode string
		want      []string
	}{
		{
			name: "success is debug",
			want: []string{"MCP call", "tools/call", "get_kit_component_doc", "int64:7"},
		},
		{
			name:      "failure is error",
			errorCode: "-32603",
			want:      []string{"MCP call failed", "-32603"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := NewTestLogger()
			logger.LogCall("tools/call", "get_kit_component_doc", "int64:7", time.Now(), tt.errorCode)

			output := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, output, w)
			}
		})
	}
}

func TestLogCall_SuccessHiddenInProduction(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewAppLoggerWithOptions(Options{Output: &buf})
	require.NoError(t, err)

	logger.LogCall("ping", "", "int64:1", time.Now(), "")
	assert.Empty(t, buf.String())

	logger.LogCall("tools/call", "save_base64_image", "int64:2", time.Now(), "-32603")
	assert.Contains(t, buf.String(), "save_base64_image")
}

func TestDebugObject(t *testing.T) {
	logger, buf := NewTestLogger()

	testObj := struct {
		Name  string
		Value int
	}{
		Name:  "test",
		Value: 42,
	}

	logger.DebugObject("test_object", testObj)

	output := buf.String()
	if !strings.Contains(output, "Object dump") {
		t.Errorf("Expected log output to contain 'Object dump', got: %s", output)
	}
	if !strings.Contains(output, "test_object") {
		t.Errorf("Expected log output to contain object name, got: %s", output)
	}
}

func TestLogPerformance(t *testing.T) {
	logger, buf := NewTestLogger()

	start := time.Now()
	time.Sleep(1 * time.Millisecond) // Small delay for measurable duration
	logger.LogPerformance("test_operation", start)

	output := buf.String()
	if !strings.Contains(output, "Performance") {
		t.Errorf("Expected log output to contain 'Performance', got: %s", output)
	}
	if !strings.Contains(output, "test_operation") {
		t.Errorf("Expected log output to contain operation name, got: %s", output)
	}
}

func TestGetDefault_Singleton(t *testing.T) {
	// Reset the singleton for testing
	defaultLogger = nil
	once = sync.Once{}
	t.Setenv("DEBUG", "")

	logger1 := GetDefault()
	logger2 := GetDefault()

	if logger1 != logger2 {
		t.Error("Expected GetDefault() to return the same instance (singleton)")
	}
}

func BenchmarkInfo(b *testing.B) {
	logger, _ := NewTestLogger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
