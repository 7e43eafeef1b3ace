package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates the input cannot be synced as is.
	ErrValidation = errors.New("validation failed")
)

// UpstreamError reports a failed call to an external platform.
type UpstreamError struct {
	Platform   string
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d: %s", e.Platform, e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Platform, e.Op, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
