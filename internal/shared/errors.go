package shared

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSnapshot   = errors.New("no snapshot loaded")
	ErrNoResults    = errors.New("no result files found")
)

// FetchError reports a failed object-store operation. Op names the stage
// (list, get, parse), Dataset and Key are set once a file had been selected,
// and Hints carry remediation steps surfaced to the caller.
type FetchError struct {
	Op      string
	Dataset string
	Key     string
	Err     error
	Hints   []string
}

func (e *FetchError) Error() string {
	msg := "fetch " + e.Op
	if e.Dataset != "" {
		msg += " " + e.Dataset
	}
	if e.Key != "" {
		msg += " (" + e.Key + ")"
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MergeError reports a structural failure while joining the loaded datasets.
type MergeError struct {
	Stage string
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge stage %s: %v", e.Stage, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

func NewMergeError(stage string, err error) *MergeError {
	return &MergeError{Stage: stage, Err: err}
}

type APIError struct {
	Code    string `json:"code" example:"invalid_request"`
	Message string `json:"message" example:"Invalid request body"`
	Details any    `json:"details,omitempty" swaggertype:"object"`
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

func (e *APIError) ToHTTP(status int) *echo.HTTPError {
	return echo.NewHTTPError(status, e)
}

func BadRequest(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusBadRequest)
}

func Unauthorized(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusUnauthorized)
}

func Forbidden(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusForbidden)
}

func NotFound(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusNotFound)
}

func UnprocessableEntity(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusUnprocessableEntity)
}

func InternalError(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusInternalServerError)
}

func BadGateway(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusBadGateway)
}

func ServiceUnavailable(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusServiceUnavailable)
}
