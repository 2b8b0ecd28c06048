package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	bfteerrors "github.com/fx-xf/bfte/pkg/errors"
)

const (
	ErrAttrKey = "error"

	FormatJSON    = "json"
	FormatConsole = "console"
)

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger creates a logger writing to w. format is "json" or
// "console"; anything else is treated as json.
func NewZerologLogger(w io.Writer, level Level, format string) *ZerologLogger {
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZerologLogger {
	return &ZerologLogger{zl: zerolog.Nop()}
}

func (l *ZerologLogger) Debug(msg string, fields ...any) { emit(l.zl.Debug(), msg, fields) }
func (l *ZerologLogger) Info(msg string, fields ...any)  { emit(l.zl.Info(), msg, fields) }
func (l *ZerologLogger) Warn(msg string, fields ...any)  { emit(l.zl.Warn(), msg, fields) }
func (l *ZerologLogger) Error(msg string, fields ...any) { emit(l.zl.Error(), msg, fields) }

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		if err, ok := fields[i+1].(error); ok {
			ctx = ctx.AnErr(key, err)
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &ZerologLogger{zl: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return l.zl.GetLevel() <= toZerologLevel(level)
}

func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		switch v := fields[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
			if st := extractStacktrace(v); st != "" {
				e = e.Str(StacktraceKey, st)
			}
		case zerolog.LogObjectMarshaler:
			e = e.Object(key, v)
		case float64:
			e = e.Float64(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	if len(fields)%2 == 1 {
		e = e.Interface("!BADKEY", fields[len(fields)-1])
	}
	e.Msg(msg)
}

// extractStacktrace pulls the first safe detail cockroachdb/errors recorded,
// which holds the formatted stack of errors.WithStack.
func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, bfteerrors.NewValidationError("log_level", "must be one of debug, info, warn, error", level)
	}
}

// ErrAttr pairs err with the standard error key for use as fields.
func ErrAttr(err error) []any {
	return []any{ErrAttrKey, err}
}

// ===========================================================================
//
//	Process default logger
//
// ===========================================================================

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewNop()
)

// SetLogger replaces the process default logger.
func SetLogger(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if l == nil {
		l = NewNop()
	}
	defaultLogger = l
}

// GetLogger returns the process default logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns the default logger tagged with a component.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// Setup builds a zerolog logger from textual settings, installs it as the
// default, and routes errors.Warn through it.
func Setup(w io.Writer, level, format string) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := NewZerologLogger(w, lvl, format)
	SetLogger(logger)
	bfteerrors.SetZerologWarnFunc(func(warning error) {
		logger.Warn(warning.Error(), "warning", warning)
	})
	return logger, nil
}
