package logging

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"
)

// RequestLogger puts a request-scoped logger in the context and logs one
// line per request when it completes: server errors at error level,
// client errors at warn, the rest at info. The request ID is taken from
// the X-Request-ID header, which the router's RequestID middleware sets.
func RequestLogger(logger Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLog := logger.With(
				String("request_id", r.Header.Get("X-Request-ID")),
				String("method", r.Method),
				String("path", r.URL.Path),
			)
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(ContextWithLogger(r.Context(), reqLog)))

			fields := []Field{
				Int("status", sw.status),
				Int("bytes", sw.bytes),
				Duration("duration", time.Since(start)),
			}
			switch {
			case sw.status >= 500:
				reqLog.Error("request", fields...)
			case sw.status >= 400:
				reqLog.Warn("request", fields...)
			default:
				reqLog.Info("request", fields...)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Hijack lets WebSocket upgrades through.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("logging: response writer cannot hijack")
	}
	w.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
