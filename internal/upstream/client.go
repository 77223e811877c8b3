// Package upstream talks to the external REST APIs the server proxies.
// Every call is a single attempt with a bounded timeout; failures come back
// as an *APIError whose message is safe to show the caller and never
// contains the bearer token.
package upstream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// conn carries the transport shared by all upstream clients.
type conn struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	now        func() time.Time
}

func defaultConn() conn {
	return conn{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
}

// ClientOption configures an upstream client.
type ClientOption func(*conn)

// WithHTTPClient replaces the default HTTP client. The caller owns the
// client's timeout.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *conn) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLimiter paces requests through the given limiter. Nil disables
// pacing.
func WithLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *conn) {
		c.limiter = limiter
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *conn) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// get issues one GET with bearer auth and maps transport failures and
// non-200 statuses to an *APIError. On success it returns the body and the
// response headers.
func (c *conn) get(ctx context.Context, url, token string) ([]byte, http.Header, *APIError) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, networkError(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, networkError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, nil, &APIError{Kind: KindNetwork, Message: "API request timed out"}
		}
		return nil, nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.Header, classify(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.Header, networkError(err)
	}
	return body, resp.Header, nil
}

// isTimeout reports whether any error in the chain is a network timeout.
// Wrappers like url.Error report Timeout from their direct cause only, so a
// single errors.As at the head of the chain is not enough.
func isTimeout(err error) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if ne, ok := e.(net.Error); ok && ne.Timeout() {
			return true
		}
	}
	return false
}
