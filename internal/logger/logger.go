package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cancerdetect/internal/config"
)

// Logger provides leveled logging (info/warning/error) to files and stdout/stderr.
type Logger struct {
	log    zerolog.Logger
	logDir string
	files  []*os.File
	writer *levelWriter
	mu     sync.Mutex
}

// NewLogger creates a Logger and ensures the log directory exists.
func NewLogger(config *config.Config) (*Logger, error) {
	if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	l := &Logger{logDir: config.LogDirectory}
	if err := l.setupLoggers(); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

// NewWriterLogger logs to w only. Log files are not written and CleanLogs is a no-op.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{
		log: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// setupLoggers opens the per-level files and routes every event to its level file and the console.
func (l *Logger) setupLoggers() error {
	info, err := l.openLogFile(filepath.Join(l.logDir, "info.log"))
	if err != nil {
		return err
	}
	warning, err := l.openLogFile(filepath.Join(l.logDir, "warning.log"))
	if err != nil {
		return err
	}
	errorFile, err := l.openLogFile(filepath.Join(l.logDir, "error.log"))
	if err != nil {
		return err
	}

	w := &levelWriter{
		files: map[zerolog.Level]io.Writer{
			zerolog.InfoLevel:  info,
			zerolog.WarnLevel:  warning,
			zerolog.ErrorLevel: errorFile,
		},
		stdout: zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime},
		stderr: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime},
	}

	l.writer = w
	l.log = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// DisableConsole keeps writing the level files but stops echoing to stdout and stderr.
// Used while a full screen terminal UI owns the console.
func (l *Logger) DisableConsole() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer != nil {
		l.writer.stdout = io.Discard
		l.writer.stderr = io.Discard
	}
}

// openLogFile opens or creates a log file for appending.
func (l *Logger) openLogFile(filename string) (*os.File, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filename, err)
	}
	l.files = append(l.files, file)
	return file, nil
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Info().Msgf(format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Warn().Msgf(format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Error().Msgf(format, v...)
}

// CleanLogs truncates the specified log file.
func (l *Logger) CleanLogs(fileName string) error {
	if l.logDir == "" {
		return nil
	}

	filePath := filepath.Join(l.logDir, filepath.Base(fileName))
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		l.Error("Error opening file: %v", err)
		return err
	}
	defer file.Close()

	l.Info("File %s has been cleared.", fileName)
	return nil
}

// Close closes the log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}

// levelWriter sends each event to the file of its level and to stdout (stderr for errors).
type levelWriter struct {
	files  map[zerolog.Level]io.Writer
	stdout io.Writer
	stderr io.Writer
}

func (w *levelWriter) Write(p []byte) (int, error) {
	return w.stdout.Write(p)
}

func (w *levelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if f, ok := w.files[level]; ok {
		if _, err := f.Write(p); err != nil {
			return 0, err
		}
	}
	if level >= zerolog.ErrorLevel {
		return w.stderr.Write(p)
	}
	return w.stdout.Write(p)
}
