package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeMissingParameter   = "missing_parameter"
	CodeNotFound           = "not_found"
	CodeAccessDenied       = "access_denied"
	CodeServiceUnavailable = "service_unavailable"
	CodeConfigError        = "config_error"
	CodeInternalError      = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func MissingParameter(name string) *Error {
	return New(http.StatusBadRequest, CodeMissingParameter, fmt.Errorf("%s is required", name))
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", what))
}

// AccessDenied is surfaced with a 404 so callers cannot probe for rows owned
// by other users.
func AccessDenied(what string) *Error {
	return New(http.StatusNotFound, CodeAccessDenied, fmt.Errorf("%s not found", what))
}

func ServiceUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeServiceUnavailable, err)
}

func ConfigError(err error) *Error {
	return New(http.StatusInternalServerError, CodeConfigError, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternalError, err)
}

// StatusAndCode maps any error to an HTTP status plus machine code, falling
// back to internal_error for non-API errors.
func StatusAndCode(err error) (int, string) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := apiErr.Code
		if code == "" {
			code = CodeInternalError
		}
		return status, code
	}
	return http.StatusInternalServerError, CodeInternalError
}
