// Package apperr carries HTTP-aware errors from use cases to handlers.
package apperr

import (
	"errors"
	"net/http"
)

const (
	CodeInvalidPayload     = "invalid_payload"
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeUnauthorized       = "unauthorized"
	CodeInvalidCredentials = "invalid_credentials"
	CodeForbidden          = "forbidden"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal_error"

	CodeInvalidMediaCategory = "invalid_media_category"
	CodeTooManyFiles         = "too_many_files"
	CodeFileTooLarge         = "file_too_large"
	CodeUnsupportedMedia     = "unsupported_media_type"
	CodeCoverExists          = "cover_exists"
	CodeMediaUploadFailed    = "media_upload_failed"
	CodeMediaPersistFailed   = "media_persist_failed"

	CodeCMSUnavailable   = "cms_unavailable"
	CodeCMSNotConfigured = "cms_not_configured"
)

// AppError pairs a public message and code with the HTTP status to answer with.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func Wrap(status int, code, message string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, CodeInvalidPayload, message)
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, CodeValidation, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, CodeConflict, message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, CodeForbidden, message)
}

// Upstream reports a failing dependency (object storage, CMS) as 502.
func Upstream(code, message string, err error) *AppError {
	return Wrap(http.StatusBadGateway, code, message, err)
}

func Internal(message string, err error) *AppError {
	return Wrap(http.StatusInternalServerError, CodeInternal, message, err)
}

// As returns the *AppError in err's chain, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf reports the status an error would be answered with, 500 for plain errors.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
