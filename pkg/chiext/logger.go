package chiext

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs requests through slog.
func Logger() func(next http.Handler) http.Handler {
	return middleware.RequestLogger(&slogLogFormatter{})
}

type slogLogFormatter struct{}

// NewLogEntry implements middleware.LogFormatter.
func (l *slogLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	attrs := []any{}

	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		attrs = append(attrs, slog.String("request", reqID))
	}
	attrs = append(attrs, slog.String("from", r.RemoteAddr))

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return &slogLogEntry{
		attrs: attrs,
		msg:   fmt.Sprintf("%s %s://%s%s %s", r.Method, scheme, r.Host, r.RequestURI, r.Proto),
	}
}

type slogLogEntry struct {
	attrs []any
	msg   string
}

func (l *slogLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	attrs := append(l.attrs,
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.String("elapsed", elapsed.String()),
	)

	if status >= 500 {
		slog.Error(l.msg, attrs...)
	} else {
		slog.Info(l.msg, attrs...)
	}
}

func (l *slogLogEntry) Panic(v interface{}, stack []byte) {
	middleware.PrintPrettyStack(v)
}
