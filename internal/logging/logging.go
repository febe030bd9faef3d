// Package logging provides structured logging infrastructure for clipforge.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init initializes the global logger with console output.
func Init(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// NewLogger creates a new logger writing to the given writers. With no
// writers it returns the global logger.
func NewLogger(writers ...io.Writer) zerolog.Logger {
	if len(writers) == 0 {
		return log.Logger
	}

	if len(writers) == 1 {
		return zerolog.New(writers[0]).With().Timestamp().Logger()
	}

	multi := zerolog.MultiLevelWriter(writers...)
	return zerolog.New(multi).With().Timestamp().Logger()
}

// WithComponent creates a logger with a component field.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

// FileLog is a timestamped per-run log file.
type FileLog struct {
	file *os.File
	path string
}

// Setup creates a per-run log file under logDir and points the global logger
// at both the console and the file. Returns nil if file logging is disabled.
func Setup(logDir string, verbose, noLog bool) (*FileLog, error) {
	Init(verbose)

	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(logDir, fmt.Sprintf("clipforge_run_%s.log", timestamp))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	log.Logger = NewLogger(console, file)

	log.Info().Str("file", path).Msg("clipforge starting")

	return &FileLog{file: file, path: path}, nil
}

// Close closes the log file.
func (f *FileLog) Close() error {
	if f == nil || f.file == nil {
		return nil
	}
	return f.file.Close()
}

// Path returns the path to the log file.
func (f *FileLog) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Writer returns an io.Writer that writes to the log file.
func (f *FileLog) Writer() io.Writer {
	if f == nil || f.file == nil {
		return io.Discard
	}
	return f.file
}
