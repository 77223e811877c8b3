package upstream

import (
	"fmt"
	"net/http"
)

// Kind classifies an upstream failure.
type Kind int

const (
	// KindConfig means a required endpoint or token is not configured; no
	// network call was made.
	KindConfig Kind = iota
	// KindAuth is an HTTP 401.
	KindAuth
	// KindForbidden is an HTTP 403.
	KindForbidden
	// KindNotFound is an HTTP 404.
	KindNotFound
	// KindRateLimited is an HTTP 429.
	KindRateLimited
	// KindServer is any other unexpected status.
	KindServer
	// KindNetwork covers transport failures and timeouts.
	KindNetwork
	// KindMalformed means the response body was not usable JSON.
	KindMalformed
)

// APIError is a failed upstream call. Message is shown to the caller
// verbatim; Status is the HTTP status when one was received, zero
// otherwise.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// StatusCode reports the HTTP status associated with the failure, if any.
func (e *APIError) StatusCode() int { return e.Status }

func configError(message string) *APIError {
	return &APIError{Kind: KindConfig, Message: message}
}

func networkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: "API request failed: " + err.Error()}
}

// classify maps a non-200 HTTP status to its caller-facing failure.
func classify(status int) *APIError {
	switch status {
	case http.StatusUnauthorized:
		return &APIError{Kind: KindAuth, Status: status, Message: "Authentication failed. Please check your bearer token."}
	case http.StatusForbidden:
		return &APIError{Kind: KindForbidden, Status: status, Message: "Access forbidden. Check your permissions."}
	case http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Status: status, Message: "API endpoint not found. Check your API URL."}
	case http.StatusTooManyRequests:
		return &APIError{Kind: KindRateLimited, Status: status, Message: "Rate limit exceeded. Please wait and try again."}
	default:
		return &APIError{Kind: KindServer, Status: status, Message: fmt.Sprintf("API request failed with status %d", status)}
	}
}

func malformedError() *APIError {
	return &APIError{Kind: KindMalformed, Message: "Invalid JSON response from API"}
}

// headerDate returns the response Date header, or "Unknown" when the
// upstream did not send one.
func headerDate(h http.Header) string {
	if d := h.Get("Date"); d != "" {
		return d
	}
	return "Unknown"
}
