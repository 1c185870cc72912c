// Package logging defines the diagnostic logging contract used by the
// converter and the CLI. User-facing progress lines are not logged here;
// they go straight to the CLI's stdout.
package logging

import (
	"context"
	"maps"
	"strings"
)

// Logger is the leveled logging contract. It mirrors go-logger's glog.Logger
// so the gologger provider can adapt it without conversion.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can carry structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// Provider hands out named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

const rootModule = "md2docx"

// Field keys attached by WithDocument.
const (
	fieldSource = "source"
	fieldOutput = "output"
)

// ModuleLogger returns the logger for module, attaching it as a "module"
// field. A nil provider yields a no-op logger.
func ModuleLogger(provider Provider, module string) Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// WithFields attaches fields when logger supports them and returns logger
// unchanged otherwise. The map is copied.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fl.WithFields(copied)
	}
	return logger
}

// WithDocument scopes logger to one manifest entry. Empty values are ignored.
func WithDocument(logger Logger, source, output string) Logger {
	fields := map[string]any{}
	if s := strings.TrimSpace(source); s != "" {
		fields[fieldSource] = s
	}
	if o := strings.TrimSpace(output); o != "" {
		fields[fieldOutput] = o
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ Logger       = noopLogger{}
	_ FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger { return n }

func (n noopLogger) WithContext(context.Context) Logger { return n }
