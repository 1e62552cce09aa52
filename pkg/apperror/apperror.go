package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups errors by how a caller should react to them.
type Kind string

const (
	KindValidation            Kind = "validation"
	KindNotFound              Kind = "not_found"
	KindConflict              Kind = "conflict"
	KindInvalidState          Kind = "invalid_state"
	KindInsufficientResources Kind = "insufficient_resources"
	KindInternal              Kind = "internal"
)

// CodeInternal is the stable code reported for every store or unexpected failure.
const CodeInternal = "internal_error"

// Error is a domain failure with a stable machine readable code.
type Error struct {
	kind    Kind
	code    string
	message string
	fields  map[string]string
	err     error
}

// New returns an Error of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{kind: kind, code: code, message: message}
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.err
}

// Is matches any *Error carrying the same code, so wrapped sentinels compare equal.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.code == e.code
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Code() string { return e.code }

// Message is the client-safe description. Causes are never included.
func (e *Error) Message() string { return e.message }

// Withf copies the error with a more specific message.
func (e *Error) Withf(format string, args ...any) *Error {
	return &Error{
		kind:    e.kind,
		code:    e.code,
		message: fmt.Sprintf(format, args...),
		fields:  e.fields,
		err:     e.err,
	}
}

// Validation builds a validation error with the generic code.
func Validation(message string) *Error {
	return New(KindValidation, "validation_failed", message)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// ValidationFields reports per-field validation failures.
func ValidationFields(message string, fields map[string]string) *Error {
	e := Validation(message)
	e.fields = fields
	return e
}

// Fields returns per-field details, if any.
func (e *Error) Fields() map[string]string { return e.fields }

// Internal wraps a store or unexpected failure. The cause stays available for logging.
func Internal(err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	return &Error{kind: KindInternal, code: CodeInternal, message: "internal server error", err: err}
}

// From extracts an *Error, treating anything else as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// HTTPStatus maps an error kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidState, KindInsufficientResources:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
