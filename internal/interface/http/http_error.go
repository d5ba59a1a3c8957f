package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/ai-almanac/pkg/errors"
)

const (
	genericFailureMessage = "Failed to generate almanac"

	// statusClientClosedRequest is the de facto code for a caller that hung
	// up before the reading was ready.
	statusClientClosedRequest = 499
)

// HTTPError is the transport view of a failure: the status, the public code
// and message rendered by errorHandlingMiddleware, and the cause for logs.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

type appErrorResponse struct {
	status int
	code   string
	// public reports whether AppError.Message is safe to show callers.
	public bool
}

// appErrorResponses maps almanac error codes onto responses. Anything not
// listed, unsupported_locale included, is an internal failure.
var appErrorResponses = map[string]appErrorResponse{
	"invalid_input": {status: http.StatusBadRequest, code: "invalid_request", public: true},
	"canceled":      {status: statusClientClosedRequest, code: "request_canceled"},
}

var internalFailure = appErrorResponse{status: http.StatusInternalServerError, code: "almanac_failed"}

// fromAppError turns a service error into its HTTP response. Only
// validation messages, which are already localized, reach the caller.
func fromAppError(err error) *HTTPError {
	resp := internalFailure
	message := genericFailureMessage

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if mapped, ok := appErrorResponses[appErr.Code]; ok {
			resp = mapped
		}
		if resp.public && appErr.Message != "" {
			message = appErr.Message
		}
	}
	return NewHTTPError(resp.status, resp.code, message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromAppError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
