package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"
)

const requestIDHeader = "X-Request-Id"

// loggingRoundTripper tags every outbound call with an X-Request-Id (which
// chimiddleware.RequestID on the server picks up) and logs its outcome.
// Bodies are never logged; they carry passwords and tokens.
type loggingRoundTripper struct {
	inner  http.RoundTripper
	logger *slog.Logger
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := req.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = xid.New().String()
		req = req.Clone(req.Context())
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := l.inner.RoundTrip(req)
	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Duration("duration", time.Since(start)),
		slog.String("requestID", requestID),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.logger.LogAttrs(req.Context(), slog.LevelError, "api request failed", attrs...)
		return nil, err
	}

	attrs = append(attrs, slog.Int("status", resp.StatusCode))
	l.logger.LogAttrs(req.Context(), slog.LevelDebug, "api request", attrs...)
	return resp, nil
}
