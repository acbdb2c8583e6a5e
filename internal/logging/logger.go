package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output and format names accepted in Config.
const (
	OutputStderr  = "stderr"
	OutputFile    = "file"
	OutputDiscard = "discard"

	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects level, encoding and destination for a logger.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// LogPathResult is a logger together with where it ended up writing.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg, falling back to stderr when the file
// cannot be opened.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath builds a logger from cfg and reports the destination used.
// An unknown level falls back to info.
func NewLoggerWithPath(cfg Config) LogPathResult {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var (
		result LogPathResult
		out    io.Writer = os.Stderr
	)

	switch cfg.Output {
	case OutputDiscard:
		out = io.Discard
	case OutputFile:
		f, openErr := openLogFile(cfg.File)
		if openErr != nil {
			result.FallbackUsed = true
			result.FallbackReason = openErr.Error()
			break
		}
		out = f
		result.file = f
		result.UsingFile = true
		result.FilePath = cfg.File
	}

	if cfg.Format != FormatJSON && !result.UsingFile {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger()
	return result
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where logs are being written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user file logging failed and stderr is used.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not log to file (%s), using stderr\n", reason)
}
