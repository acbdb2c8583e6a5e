package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPath_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "WARN", want: zerolog.WarnLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			result := NewLoggerWithPath(Config{Level: tt.level, Output: OutputDiscard})
			assert.Equal(t, tt.want, result.Logger.GetLevel())
			assert.False(t, result.UsingFile)
		})
	}
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pagefeed.log")

	result := NewLoggerWithPath(Config{Level: "info", Format: FormatJSON, Output: OutputFile, File: path})
	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Str("k", "v").Msg("hello")
	require.NoError(t, result.Close())
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestNewLoggerWithPath_FileFallback(t *testing.T) {
	result := NewLoggerWithPath(Config{Output: OutputFile, File: ""})
	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(zerolog.New(&buf), "fetch")
	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"fetch"`)
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	_, err := ulid.Parse(generated)
	require.NoError(t, err)

	ctx = ContextWithTraceID(ctx, generated)
	assert.Equal(t, generated, TraceIDFromContext(ctx))
	assert.Equal(t, generated, GetOrGenerateTraceID(ctx))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from ctx")
	assert.Contains(t, buf.String(), "from ctx")

	// no logger stored: must not panic
	FromContext(context.Background()).Info().Msg("dropped")
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "/tmp/x.log")
	assert.Contains(t, buf.String(), "denied")
}
