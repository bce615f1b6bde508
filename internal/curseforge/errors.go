package curseforge

import (
	"errors"
	"fmt"
)

// Sentinel errors for CurseForge API operations.
var (
	// ErrNotFound is returned when the requested game, mod or file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimitExceeded is returned when the API rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidResponse is returned when the API returns a body that is not JSON.
	ErrInvalidResponse = errors.New("invalid API response")

	// ErrConfiguration marks caller mistakes detected before a request is
	// sent. Errors wrapping it are never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidGameID is returned when a game-scoped request has no usable game id.
	ErrInvalidGameID = fmt.Errorf("%w: game id must be a positive integer", ErrConfiguration)

	// ErrInvalidModID is returned when a mod-scoped request has no usable mod id.
	ErrInvalidModID = fmt.Errorf("%w: mod id must be a positive integer", ErrConfiguration)
)

// APIError represents an error response from the CurseForge API.
type APIError struct {
	StatusCode   int    `json:"-"`
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.ErrorMessage == "" {
		return fmt.Sprintf("curseforge API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("curseforge API error (status %d): %s", e.StatusCode, e.ErrorMessage)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode:   statusCode,
		ErrorMessage: message,
	}
}

// IsConfigurationError reports whether err was raised before dispatch
// because of invalid input.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
