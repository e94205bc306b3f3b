package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger wraps zap behind a slog-style key/value API. The *Context variants
// stamp trace_id/span_id from the active span so log lines join up with
// traces in the backend.
type Logger struct {
	zap *zap.Logger
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// NewJSON builds a production logger writing one JSON object per line to
// stdout. Stacktraces are attached at error level and above.
func NewJSON(level Level) *Logger {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})

	z := zap.New(
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	return FromZap(z)
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return NewNop()
}

func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	defaultLogger.Store(l)
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil || l.zap == nil {
		return zap.NewNop()
	}
	return l.zap
}

func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

// With returns a child logger carrying the given key/value pairs on every
// subsequent line.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{zap: l.zap.With(pairsToFields(args)...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(zap.DebugLevel, msg, pairsToFields(args)) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(zap.InfoLevel, msg, pairsToFields(args)) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(zap.WarnLevel, msg, pairsToFields(args)) }
func (l *Logger) Error(msg string, args ...any) { l.emit(zap.ErrorLevel, msg, pairsToFields(args)) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(zap.DebugLevel, msg, withTrace(ctx, pairsToFields(args)))
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(zap.InfoLevel, msg, withTrace(ctx, pairsToFields(args)))
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(zap.WarnLevel, msg, withTrace(ctx, pairsToFields(args)))
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(zap.ErrorLevel, msg, withTrace(ctx, pairsToFields(args)))
}

func (l *Logger) emit(level zapcore.Level, msg string, fields []zap.Field) {
	target := l
	if target == nil {
		target = Default()
	}
	if ce := target.zap.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

func withTrace(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return fields
	}
	return append(fields,
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// pairsToFields converts alternating key/value arguments into zap fields.
// Non-string keys and a dangling final value are kept rather than dropped,
// so a miscalled site still logs something findable.
func pairsToFields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, (len(args)+1)/2)
	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || key == "" {
			key = "arg"
		}
		if len(args) == 1 {
			fields = append(fields, zap.Any(key, nil))
			break
		}
		if err, isErr := args[1].(error); isErr {
			fields = append(fields, zap.NamedError(key, err))
		} else {
			fields = append(fields, zap.Any(key, args[1]))
		}
		args = args[2:]
	}

	return fields
}
