package httpclient

import (
	"net/http"
	"time"

	"pharmacart/internal/core/logger"

	"go.uber.org/zap"
)

// TokenSource yields the current bearer token, or "" when no session exists.
type TokenSource func() string

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// bearerRoundTripper injects an Authorization header from a TokenSource.
type bearerRoundTripper struct {
	proxied http.RoundTripper
	tokens  TokenSource
}

// RoundTrip attaches the bearer token, if any, and delegates.
func (brt *bearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := brt.tokens(); token != "" {
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+token)
		return brt.proxied.RoundTrip(clone)
	}
	return brt.proxied.RoundTrip(req)
}

// NewClient returns an http.Client with logging middleware.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
		},
		Timeout: timeout,
	}
}

// NewAuthClient returns an http.Client that logs requests and attaches a
// bearer token from the given source on every request.
func NewAuthClient(timeout time.Duration, tokens TokenSource) *http.Client {
	return &http.Client{
		Transport: &bearerRoundTripper{
			proxied: &LoggingRoundTripper{Proxied: http.DefaultTransport},
			tokens:  tokens,
		},
		Timeout: timeout,
	}
}
