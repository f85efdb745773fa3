// Package logging writes per-session debug logs for the memo app.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes leveled entries for one component to the session log file
// under ~/.memo/logs/. The terminal owns stdout while the UI runs, so
// nothing is written there.
//
// There is no level filtering; every call is written.
type Logger struct {
	sessionID string
	component string
	file      *os.File
	logger    *log.Logger
	mu        sync.Mutex
	logPath   string
	closeOnce sync.Once
}

var (
	// Session ID shared by every logger in this process
	sessionID     string
	sessionIDOnce sync.Once

	// dirMu guards logDir
	dirMu  sync.Mutex
	logDir string
)

func getSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// SetDirectory overrides the directory log files are written to. It must be
// called before the first NewLogger to take effect for that logger.
func SetDirectory(dir string) {
	dirMu.Lock()
	defer dirMu.Unlock()
	logDir = dir
}

// directory resolves and creates the log directory.
func directory() (string, error) {
	dirMu.Lock()
	defer dirMu.Unlock()

	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		logDir = filepath.Join(homeDir, ".memo", "logs")
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return logDir, nil
}

// NewLogger creates a logger for component writing to
// <log dir>/<session-id>-memo.log.
//
// When the file cannot be opened it still returns a usable logger that
// writes to stderr, together with the error, so callers can warn about it.
func NewLogger(component string) (*Logger, error) {
	dir, err := directory()
	if err != nil {
		return newFallbackLogger(component, err), err
	}

	sessID := getSessionID()
	logPath := filepath.Join(dir, fmt.Sprintf("%s-memo.log", sessID))

	// Append mode: every component of the session shares the file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open log file: %w", err)
		return newFallbackLogger(component, err), err
	}

	return &Logger{
		sessionID: sessID,
		component: component,
		file:      file,
		logger:    log.New(file, "", 0),
		logPath:   logPath,
	}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger(component string) *Logger {
	return &Logger{
		sessionID: getSessionID(),
		component: component,
		logger:    log.New(io.Discard, "", 0),
	}
}

func newFallbackLogger(component string, err error) *Logger {
	logger := log.New(os.Stderr, "", 0)
	l := &Logger{
		sessionID: getSessionID(),
		component: component,
		logger:    logger,
	}
	l.Warnf("file logging unavailable, using stderr: %v", err)
	return l
}

func (l *Logger) write(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] [%s] %s", timestamp, l.component, level, fmt.Sprintf(format, v...))
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) { l.write("DEBUG", format, v...) }

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) { l.write("INFO", format, v...) }

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) { l.write("WARN", format, v...) }

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) { l.write("ERROR", format, v...) }

// SessionID returns the session ID shared by all loggers in this process.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogPath returns the log file path, or "" when not logging to a file.
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
