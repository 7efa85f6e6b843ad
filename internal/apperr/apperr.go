// Package apperr carries typed, status-aware errors so the HTTP layer can
// map client-caused and upstream/server-caused failures deterministically.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the application error type. Status drives the HTTP mapping;
// UpstreamStatus is set only for failures reported by the AI provider.
type Error struct {
	Code           string `json:"code"`
	Message        string `json:"message,omitempty"`
	Status         int    `json:"-"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	Err            error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return "error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validation reports a client-caused failure (bad upload type, empty
// question, missing transcript) as a 400.
func Validation(message string) *Error {
	return &Error{Code: "validation_error", Status: http.StatusBadRequest, Message: message}
}

// Upstream reports a non-success response from the AI provider. The
// upstream status and detail are carried verbatim; the caller-facing
// status is always 500.
func Upstream(api string, status int, detail string) *Error {
	return &Error{
		Code:           "upstream_error",
		Status:         http.StatusInternalServerError,
		UpstreamStatus: status,
		Message:        fmt.Sprintf("%s error (%d): %s", api, status, detail),
	}
}

// Config reports a missing required credential at call time. Distinct
// from Upstream: no request ever left the process.
func Config(message string) *Error {
	return &Error{Code: "config_error", Status: http.StatusInternalServerError, Message: message}
}

// Internal wraps an unexpected failure (invalid image bytes, invalid
// profile payload, transport errors) as a 500.
func Internal(err error, message string) *Error {
	return &Error{Code: "internal_error", Status: http.StatusInternalServerError, Message: message, Err: err}
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// Status returns the HTTP status for err, defaulting to 500.
func Status(err error) int {
	if e, ok := As(err); ok && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Detail returns the caller-facing message for err.
func Detail(err error) string {
	if e, ok := As(err); ok {
		return e.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
