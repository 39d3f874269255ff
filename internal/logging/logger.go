package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Supported formats and outputs.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	OutputStderr  = "stderr"
	OutputFile    = "file"
)

// Config describes how a logger is built.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file, if one was opened.
func (r *LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ParseLevel parses a zerolog level name, defaulting to warn.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

// NewLoggerWithWriter builds a logger writing to w.
func NewLoggerWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		Hook(TraceHook{}).
		With().
		Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// NewLogger builds a logger writing to stderr.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithWriter(cfg, os.Stderr)
}

// NewLoggerWithPath builds a logger honoring cfg.Output. When the log file
// cannot be opened it falls back to stderr and records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	if cfg.Output != OutputFile || cfg.File == "" {
		return LogPathResult{Logger: NewLogger(cfg)}
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return LogPathResult{
			Logger:         NewLogger(cfg),
			FallbackUsed:   true,
			FallbackReason: err.Error(),
		}
	}

	return LogPathResult{
		Logger:    NewLoggerWithWriter(cfg, f),
		UsingFile: true,
		FilePath:  cfg.File,
		file:      f,
	}
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintFallbackWarning tells the user that file logging was not possible.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file, logging to stderr: %s\n", reason)
}
