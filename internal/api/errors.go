package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned before any request when no token is stored.
	ErrNotAuthenticated = errors.New("Please login first.")

	// ErrUnavailable indicates the backend could not be reached at all.
	ErrUnavailable = errors.New("PulseForge backend unreachable")
)

// RequestError is a non-2xx response from the backend.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func newRequestError(status int, serverMsg string) *RequestError {
	msg := serverMsg
	if msg == "" {
		msg = fmt.Sprintf("Request failed with %d", status)
	}
	return &RequestError{Status: status, Message: msg}
}

// IsStatus reports whether err is a RequestError with the given status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == status
}

// IsForbidden reports a 403, which the backend returns to non system admins
// on /system routes.
func IsForbidden(err error) bool { return IsStatus(err, http.StatusForbidden) }

func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }
