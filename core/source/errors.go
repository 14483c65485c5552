package source

import (
	"fmt"
	"net/http"
)

const maxErrorBody = 512

// CollectionError is returned when a request fails for good.
type CollectionError struct {
	// Resource is the requested path.
	Resource string
	// Status is the last HTTP status, 0 for network failures.
	Status int
	// Body is the start of the last response body.
	Body string
	// Attempts is the number of requests made.
	Attempts int
	// Err is the underlying transport error, if any.
	Err error
}

func (e *CollectionError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("failed to collect %s after %d attempt(s): %v", e.Resource, e.Attempts, e.Err)
	}
	return fmt.Sprintf("failed to collect %s after %d attempt(s): status %d: %s", e.Resource, e.Attempts, e.Status, e.Body)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

// NotFound reports a 404 answer.
func (e *CollectionError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Temporary reports whether another attempt may succeed.
func (e *CollectionError) Temporary() bool {
	switch {
	case e.Status == 0:
		return e.Err != nil
	case e.Status == http.StatusTooManyRequests:
		return true
	case e.Status >= 500:
		return true
	default:
		return false
	}
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
