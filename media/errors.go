package media

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a provider search yields no candidate, or
// no candidate meets the fuzzy-match threshold.
type NotFoundError struct {
	Provider string
	Title    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no match found for %q", e.Provider, e.Title)
}

// UpstreamError is returned when a provider responds with a non-2xx status
// or is unreachable (Status 0). Never retried.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: upstream request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: upstream returned HTTP %d", e.Provider, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError is returned when an assembled record violates the schema
// constraints. Unlike the other taxonomy members it indicates a provider
// contract change or adapter bug and aborts the operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ScrapeError is returned by the Steam concurrent-players scrape when the
// expected markup or number is missing. Callers recover it locally.
type ScrapeError struct {
	Reason string
}

func (e *ScrapeError) Error() string {
	return "scrape failed: " + e.Reason
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
