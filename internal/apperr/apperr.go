// Package apperr defines the error taxonomy shared by the summarization and
// question answering pipelines.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an Error.
type Code string

const (
	CodeValidation       Code = "VALIDATION"
	CodeUnsupportedModel Code = "UNSUPPORTED_MODEL"
	CodeEmbeddingService Code = "EMBEDDING_SERVICE"
	CodeSummarization    Code = "SUMMARIZATION"
	CodeQA               Code = "QA"
	CodeNotFound         Code = "NOT_FOUND"
)

var httpStatusMap = map[Code]int{
	CodeValidation:       http.StatusBadRequest,
	CodeUnsupportedModel: http.StatusUnprocessableEntity,
	CodeEmbeddingService: http.StatusBadGateway,
	CodeSummarization:    http.StatusBadGateway,
	CodeQA:               http.StatusBadGateway,
	CodeNotFound:         http.StatusNotFound,
}

// Error carries a Code, a message and the underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus returns the status code an API response should carry.
func (e *Error) HTTPStatus() int {
	if s, ok := httpStatusMap[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New creates an Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with the given code.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Cause: err}
}

// Wrapf wraps err with a formatted message.
func Wrapf(err error, code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// IsCode reports whether any error in err's chain is an *Error with code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HTTPStatus maps any error to an HTTP status.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
