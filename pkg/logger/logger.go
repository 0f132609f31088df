// Package logger provides the logging capability injected into cookiegetter
// components. Nothing in the library logs through a process-wide logger:
// callers pass a Logger in, and tests capture messages with MockLogger.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger defines the interface for diagnostics emitted by importers,
// browser managers and the CLI.
type Logger interface {
	// Info logs an informational message (e.g., "using default importer").
	Info(format string, args ...interface{})

	// Warning logs a recoverable problem (e.g., "skipping malformed line 4").
	Warning(format string, args ...interface{})

	// Error logs a failed operation (e.g., "cookie import failed [AccessError]").
	Error(format string, args ...interface{})

	// Close releases resources held by the logger.
	// Safe to call multiple times. Returns nil for loggers without resources.
	Close() error
}

// StandardLogger wraps the stdlib *log.Logger for console/file output.
type StandardLogger struct {
	logger *log.Logger
	mu     sync.Mutex
	closer io.Closer
}

// NewStandardLogger creates a logger that wraps the given *log.Logger.
func NewStandardLogger(l *log.Logger) *StandardLogger {
	return &StandardLogger{logger: l}
}

// NewFileLogger appends to the file at path, creating it with 0600
// permissions. Close releases the file.
func NewFileLogger(path string) (*StandardLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &StandardLogger{
		logger: log.New(f, "", log.LstdFlags),
		closer: f,
	}, nil
}

// Info logs an informational message with [INFO] prefix.
func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

// Warning logs a warning message with [WARNING] prefix.
func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

// Error logs an error message with [ERROR] prefix.
func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Close releases the log file, if any. Later calls return nil.
func (s *StandardLogger) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// NopLogger is a logger that discards all messages. It is the default for
// every component that accepts a Logger.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}

// Close is a no-op.
func (n *NopLogger) Close() error {
	return nil
}

// PrefixLogger prepends a fixed tag to every message of an inner Logger.
type PrefixLogger struct {
	inner  Logger
	prefix string
}

// NewPrefixLogger tags every message written to inner with prefix.
func NewPrefixLogger(inner Logger, prefix string) *PrefixLogger {
	return &PrefixLogger{inner: inner, prefix: prefix}
}

func (p *PrefixLogger) Info(format string, args ...interface{}) {
	p.inner.Info(p.prefix+format, args...)
}

func (p *PrefixLogger) Warning(format string, args ...interface{}) {
	p.inner.Warning(p.prefix+format, args...)
}

func (p *PrefixLogger) Error(format string, args ...interface{}) {
	p.inner.Error(p.prefix+format, args...)
}

// Close closes the inner logger.
func (p *PrefixLogger) Close() error {
	return p.inner.Close()
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
	_ Logger = (*PrefixLogger)(nil)
)

// MockLogger implements Logger for testing purposes.
// It records all log calls for verification in tests. Recording is safe
// for concurrent use; read the slices only once logging has finished.
type MockLogger struct {
	mu           sync.Mutex
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

// NewMockLogger creates a new MockLogger for testing.
func NewMockLogger() *MockLogger {
	return &MockLogger{
		InfoCalls:    make([]string, 0),
		WarningCalls: make([]string, 0),
		ErrorCalls:   make([]string, 0),
	}
}

// Info records the formatted message.
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

// Warning records the formatted message.
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

// Error records the formatted message.
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

// Close records that Close was called.
func (m *MockLogger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return nil
}

var _ Logger = (*MockLogger)(nil)
