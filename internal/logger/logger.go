package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the log attribute holding the request id.
const RequestIDKey = "request_id"

type requestIDKey struct{}

// ContextWithRequestID stores the request id so every *Context log call
// made with ctx carries it.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// contextHandler adds the request id found in the record's context.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String(RequestIDKey, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name)}
}

// Logger wraps slog.Logger with HTTP and booking helpers.
type Logger struct {
	*slog.Logger
}

// New builds a logger writing to stdout. gin debug mode gets the text
// handler, everything else JSON.
func New(level string) *Logger {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) *Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &Logger{Logger: slog.New(contextHandler{Handler: handler})}
}

// Nop discards everything. Used by tests and optional collaborators.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogHTTPRequest logs a finished request. The request id comes from the
// request context when the request id middleware ran first.
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	attrs := []any{
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	}

	switch status := c.Writer.Status(); {
	case status >= 500:
		l.Logger.ErrorContext(c.Request.Context(), "HTTP Request", attrs...)
	case status >= 400:
		l.Logger.WarnContext(c.Request.Context(), "HTTP Request", attrs...)
	default:
		l.Logger.InfoContext(c.Request.Context(), "HTTP Request", attrs...)
	}
}
