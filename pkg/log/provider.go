// Package log wires the Logger interface to Go's standard log/slog.
//
// This file contains the default LoggerProvider implementation backed by the
// process-wide slog logger, plus the package-level accessors library code
// uses to obtain loggers without carrying a provider around.

package log

import (
	"context"
	"log/slog"
	"sync"
)

// SlogProvider is the default LoggerProvider. It delegates to slog.Default()
// so that SetupLogger (or any application-side slog configuration) controls
// formatting, while the provider applies its own level gate on top so that
// SetLevel works without reconfiguring the underlying handler.
type SlogProvider struct {
	level *slog.LevelVar
}

// NewSlogProvider creates a provider that delegates to slog.Default().
// The gate starts wide open at Debug; the underlying handler's level
// decides what is actually emitted until SetLevel tightens the gate.
func NewSlogProvider() *SlogProvider {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelDebug)
	return &SlogProvider{level: lv}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *SlogProvider) GetLogger() Logger {
	return &slogLogger{log: slog.Default(), gate: p.level}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
// The name is attached under ComponentKey.
func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return &slogLogger{log: slog.Default().With(ComponentKey, name), gate: p.level}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *SlogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	log  *slog.Logger
	gate *slog.LevelVar
}

func (l *slogLogger) Debug(msg string, fields ...any) { l.logAt(slog.LevelDebug, msg, fields...) }
func (l *slogLogger) Info(msg string, fields ...any)  { l.logAt(slog.LevelInfo, msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...any)  { l.logAt(slog.LevelWarn, msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...any) { l.logAt(slog.LevelError, msg, fields...) }

func (l *slogLogger) logAt(level slog.Level, msg string, fields ...any) {
	if level < l.gate.Level() {
		return
	}
	l.log.Log(context.Background(), level, msg, fields...)
}

func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{log: l.log.With(fields...), gate: l.gate}
}

func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return slog.Level(level) >= l.gate.Level() && l.log.Enabled(ctx, slog.Level(level))
}

var (
	providerMu      sync.RWMutex
	defaultProvider LoggerProvider = NewSlogProvider()
)

// SetLoggerProvider replaces the provider behind the package-level accessors.
// Tests use this to capture library logs with a TestLoggerProvider.
// A nil provider restores the slog-backed default.
func SetLoggerProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if p == nil {
		p = NewSlogProvider()
	}
	defaultProvider = p
}

// GetLogger returns the default logger instance.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with a component name.
// Library packages use this to identify the component emitting the record.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLoggerWithName(name)
}

// SetLevel sets the minimum log level for loggers created by the current provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	defaultProvider.SetLevel(level)
}
