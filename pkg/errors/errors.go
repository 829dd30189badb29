package errors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by the client components wraps exactly one.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrTransport        = errors.New("transport failure")
	ErrUpload           = errors.New("upload rejected")
	ErrDecode           = errors.New("decode failed")
	ErrSchema           = errors.New("schema mismatch")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

const (
	CodeNotFound         = "not_found"
	CodeValidation       = "validation"
	CodeTransport        = "transport"
	CodeUpload           = "upload"
	CodeDecode           = "decode"
	CodeSchema           = "schema"
	CodeUnexpectedStatus = "unexpected_status"
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports a missing precondition. No I/O has happened.
func Validation(message string) error {
	return WrapWithCode(ErrValidation, CodeValidation, message)
}

// Transport reports a network failure or an unreadable response body.
func Transport(cause error, message string) error {
	return WrapWithCode(join(ErrTransport, cause), CodeTransport, message)
}

// Upload reports a server answer outside the upload success contract.
func Upload(message string) error {
	return WrapWithCode(ErrUpload, CodeUpload, message)
}

// Decode reports a captured file whose data URL is malformed.
func Decode(cause error, message string) error {
	return WrapWithCode(join(ErrDecode, cause), CodeDecode, message)
}

// Schema reports a payload that parsed but failed validation.
func Schema(cause error, message string) error {
	return WrapWithCode(join(ErrSchema, cause), CodeSchema, message)
}

// NotFound reports a missing record.
func NotFound(message string) error {
	return WrapWithCode(ErrNotFound, CodeNotFound, message)
}

// UnexpectedStatus reports a non-2xx answer from a fetch or post endpoint.
func UnexpectedStatus(status int, message string) error {
	return WrapWithCode(
		fmt.Errorf("%w: %d", ErrUnexpectedStatus, status),
		CodeUnexpectedStatus,
		message,
	)
}

func join(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsTransport(err error) bool  { return errors.Is(err, ErrTransport) }
func IsUpload(err error) bool     { return errors.Is(err, ErrUpload) }
func IsDecode(err error) bool     { return errors.Is(err, ErrDecode) }
func IsSchema(err error) bool     { return errors.Is(err, ErrSchema) }

// UserMessage is the alert text shown for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return GetMessage(err)
	case IsUpload(err):
		return "Upload failed. Please try again."
	case IsNotFound(err):
		return "Not found."
	case IsDecode(err):
		return "The selected file could not be read."
	default:
		return "An error occurred. Please try again."
	}
}
