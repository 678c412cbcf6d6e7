package xtrack

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// loggingTransport records each X-Track API call at debug level. Only the
// method, endpoint path and status are logged; request bodies and the
// Authorization header never are, since tokens travel in both.
type loggingTransport struct {
	next   http.RoundTripper
	logger *log.Logger
}

// NewLoggingTransport wraps next so every API round trip is logged.
// Pair it with SetTransport on the client.
func NewLoggingTransport(next http.RoundTripper, logger *log.Logger) http.RoundTripper {
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Error("api request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return resp, nil
}
