package hyrule

import (
	"errors"
	"fmt"
)

// Common errors returned by the compendium client.
var (
	// ErrInvalidBaseURL indicates the configured base URL could not be parsed
	ErrInvalidBaseURL = errors.New("invalid compendium base URL")
	// ErrUnknownCategory indicates a category tag the compendium doesn't define
	ErrUnknownCategory = errors.New("unknown compendium category")
	// ErrNoData indicates the API answered but carried no entry data
	ErrNoData = errors.New("no data found")
)

// APIError represents a non-2xx response from the compendium API.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("compendium API error: status %d for %s", e.StatusCode, e.Path)
}

// IsNotFound checks if the error indicates a missing resource.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsServerError checks if the error indicates an upstream failure.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
