package compute

import (
	"errors"
	"net/http"
	"strings"

	"github.com/digitalocean/godo"
)

// APIError returns the DigitalOcean error response wrapped in err, if any
func APIError(err error) (*godo.ErrorResponse, bool) {
	var apiErr *godo.ErrorResponse
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status of a DigitalOcean error, or 0
func StatusCode(err error) int {
	apiErr, ok := APIError(err)
	if !ok || apiErr.Response == nil {
		return 0
	}
	return apiErr.Response.StatusCode
}

// IsDuplicateName returns true if the API rejected a create because the name is taken
func IsDuplicateName(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := APIError(err); ok {
		return strings.Contains(strings.ToLower(apiErr.Message), "duplicate name")
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate name")
}

// IsNotFound returns true if the error is a not found error
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized returns true if the token was rejected
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsRateLimited returns true if the error is a rate limit error
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}
