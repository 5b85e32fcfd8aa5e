package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
)

// RejectionError is returned when the service answered but refused the
// request. Reason is the service-supplied message and may be empty.
type RejectionError struct {
	Status int
	Reason string
}

func (e *RejectionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("request rejected: status %d", e.Status)
	}
	return fmt.Sprintf("request rejected: status %d: %s", e.Status, e.Reason)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match authentication
// rejections that carry a reason.
func (e *RejectionError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}
