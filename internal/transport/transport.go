// Package transport provides the HTTP client used for outbound LLM calls.
// It tags requests with the strainmap user agent and logs each round trip
// through the logger carried by the request context.
package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/agentstation/strainmap/pkg/logging"
)

// Transport is an http.RoundTripper that prefixes the User-Agent header and
// logs request outcomes.
type Transport struct {
	Base      http.RoundTripper
	UserAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.UserAgent != "" {
		req = req.Clone(req.Context())
		ua := t.UserAgent
		if existing := strings.TrimSpace(req.Header.Get("User-Agent")); existing != "" {
			ua += " " + existing
		}
		req.Header.Set("User-Agent", ua)
	}

	logger := logging.FromContext(req.Context())
	start := time.Now()

	resp, err := base.RoundTrip(req)
	if err != nil {
		logger.Debug().
			Err(err).
			Str("method", req.Method).
			Str("host", req.URL.Host).
			Dur("elapsed", time.Since(start)).
			Msg("Outbound request failed")
		return nil, err
	}

	logger.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Outbound request")
	return resp, nil
}

// NewClient returns an HTTP client using Transport. A zero timeout leaves
// deadlines to the request context.
func NewClient(userAgent string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &Transport{UserAgent: userAgent},
	}
}
