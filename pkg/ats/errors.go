package ats

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned for HTTP 401 from the ATS backend.
	ErrUnauthorized = errors.New("401 Unauthorized: session expired")
	// ErrNotFound is returned for HTTP 404 from the ATS backend.
	ErrNotFound = errors.New("resource not found")
)

// APIError carries a non-2xx answer from the ATS backend.
type APIError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.Status)
}

// Unwrap maps well-known statuses onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
