package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/pkg/ctxutil"
)

// accessInfo is filled in by inner middleware so the access log sees values
// that only exist on derived request contexts.
type accessInfo struct {
	userID uuid.UUID
}

type accessInfoKey struct{}

func noteUser(ctx context.Context, id uuid.UUID) {
	if ai, ok := ctx.Value(accessInfoKey{}).(*accessInfo); ok {
		ai.userID = id
	}
}

// Logger writes one "http.request" line per request. Probe endpoints are
// logged at debug; 409 and 429 are warnings and 5xx are errors.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ai := &accessInfo{}
			if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
				ai.userID = id
			}
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), accessInfoKey{}, ai)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if pattern := rc.RoutePattern(); pattern != "" {
					attrs = append(attrs, slog.String("route", pattern))
				}
			}
			if ai.userID != uuid.Nil {
				attrs = append(attrs, slog.String("user_id", ai.userID.String()))
			}

			logger.LogAttrs(r.Context(), accessLevel(r.URL.Path, sw.status), "http.request", attrs...)
		})
	}
}

func accessLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status == http.StatusTooManyRequests, status == http.StatusConflict:
		return slog.LevelWarn
	case path == "/live" || path == "/ready":
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
