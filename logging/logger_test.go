package logging

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	t.Setenv("CTNOTES_HOME", t.TempDir())

	a := NewLogger("test-component")
	b := NewLogger("test-component")
	c := NewLogger("other-component")

	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "test-component", a.Data["component"])
}

func TestNewLoggerFromConfigLevel(t *testing.T) {
	t.Setenv("CTNOTES_LOG_LEVEL", "")
	entry := newLoggerFromConfig("x", Config{Level: "warn"}, true)
	assert.Equal(t, logrus.WarnLevel, entry.Logger.GetLevel())

	t.Setenv("CTNOTES_LOG_LEVEL", "debug")
	entry = newLoggerFromConfig("x", Config{Level: "warn"}, true)
	assert.Equal(t, logrus.DebugLevel, entry.Logger.GetLevel(), "environment wins over config")

	t.Setenv("CTNOTES_LOG_LEVEL", "nonsense")
	entry = newLoggerFromConfig("x", Config{}, true)
	assert.Equal(t, logrus.InfoLevel, entry.Logger.GetLevel())
}

func TestNewLoggerFromConfigPresets(t *testing.T) {
	t.Setenv("CTNOTES_LOG_LEVEL", "")

	entry := newLoggerFromConfig("x", Config{Format: FormatConfig{Preset: "json"}}, true)
	_, isJSON := entry.Logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	entry = newLoggerFromConfig("x", Config{Format: FormatConfig{Preset: "simple"}}, true)
	text, ok := entry.Logger.Formatter.(*TextFormatter)
	require.True(t, ok)
	assert.True(t, text.Config.DisableTimestamp)
	assert.True(t, text.Config.DisableComponent)
}

func TestShouldLogToStderr(t *testing.T) {
	t.Setenv("CTNOTES_DEBUG", "")

	assert.True(t, shouldLogToStderr("always", logrus.InfoLevel, true))
	assert.False(t, shouldLogToStderr("never", logrus.DebugLevel, false))
	assert.False(t, shouldLogToStderr("auto", logrus.InfoLevel, true))
	assert.True(t, shouldLogToStderr("auto", logrus.InfoLevel, false))
	assert.True(t, shouldLogToStderr("", logrus.DebugLevel, true))

	t.Setenv("CTNOTES_DEBUG", "1")
	assert.True(t, shouldLogToStderr("auto", logrus.InfoLevel, true))
}

func TestGlobalOutputRedirect(t *testing.T) {
	t.Setenv("CTNOTES_LOG_LEVEL", "")

	var buf bytes.Buffer
	prev := SetGlobalOutput(&buf)
	defer SetGlobalOutput(prev)

	entry := newLoggerFromConfig("redirect", Config{Format: FormatConfig{StructuredToStderr: "always"}}, true)
	entry.Info("hello")

	assert.Contains(t, buf.String(), "hello")
}

func TestFileSink(t *testing.T) {
	t.Setenv("CTNOTES_LOG_LEVEL", "")
	path := t.TempDir() + "/ctnotes.log"

	entry := newLoggerFromConfig("file", Config{
		File:   FileSinkConfig{Enabled: true, Path: path},
		Format: FormatConfig{StructuredToStderr: "never"},
	}, true)
	entry.Warn("to file")

	data, err := readFile(path)
	require.NoError(t, err)
	assert.Contains(t, data, "[WARN]")
	assert.Contains(t, data, "to file")
}

func TestTextFormatter(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "test message",
				Data:    logrus.Fields{"component": "staging", "path": "/a.ctz", "count": 2},
			},
			want: []string{"2024-03-01 12:30:00", "[INFO]", "staging", "test message", "count=2 path=/a.ctz"},
		},
		{
			name:   "simple format",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "warning message",
				Data:    logrus.Fields{"component": "staging"},
			},
			want:    []string{"[WARN]", "warning message"},
			notWant: []string{"staging", "2024"},
		},
		{
			name:   "caller information",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "with caller",
					Data:    logrus.Fields{"component": "app"},
					Caller: &runtime.Frame{
						File:     "/path/to/file.go",
						Line:     42,
						Function: "github.com/example/package.TestFunction",
					},
				}
			}(),
			want: []string{"[file.go:42 package.TestFunction]", "with caller"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.entry.Time = fixed
			out, err := (&TextFormatter{Config: tt.config}).Format(tt.entry)
			require.NoError(t, err)

			s := string(out)
			assert.True(t, strings.HasSuffix(s, "\n"))
			for _, w := range tt.want {
				assert.Contains(t, s, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, s, nw)
			}
		})
	}
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Success("removed 2 directories")
	p.ErrorPretty("remove failed", assert.AnError)
	p.Path("config", "/tmp/ctnotes.toml")

	out := buf.String()
	assert.Contains(t, out, "removed 2 directories")
	assert.Contains(t, out, assert.AnError.Error())
	assert.Contains(t, out, "/tmp/ctnotes.toml")
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}
