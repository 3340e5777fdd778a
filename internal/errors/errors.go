package errors

import (
	"errors"
	"fmt"
)

// Metadata keys shared by the dungeon packages. Handlers pass them to
// clients unchanged as the status detail.
const (
	MetaRunID            = "run_id"
	MetaSeed             = "seed"
	MetaStatus           = "status"
	MetaEvent            = "event"
	MetaPosition         = "position"
	MetaDirection        = "direction"
	MetaRoomType         = "room_type"
	MetaAttempts         = "attempts"
	MetaLastFailure      = "last_failure"
	MetaFailures         = "failures"
	MetaAgent            = "agent"
	MetaState            = "state"
	MetaUnit             = "unit"
	MetaMissing          = "missing"
	MetaValidationErrors = "validation_errors"
)

// Error is a coded error. Code decides the gRPC status, Message is safe to
// show a player, Meta carries structured context such as the run or room.
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && e.Code == other.Code
}

// WithMeta attaches one metadata entry and returns e for chaining
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{}, 2)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// wrap builds a new error around err. A nil code keeps the code of an
// inner *Error, or falls back to Internal for foreign errors. The inner
// metadata is copied so later WithMeta calls never reach the cause.
func wrap(err error, code *Code, message string) *Error {
	if err == nil {
		return nil
	}

	out := &Error{Code: CodeInternal, Message: message, Cause: err}
	var inner *Error
	if errors.As(err, &inner) {
		out.Code = inner.Code
		if len(inner.Meta) > 0 {
			out.Meta = make(map[string]interface{}, len(inner.Meta))
			for k, v := range inner.Meta {
				out.Meta[k] = v
			}
		}
	}
	if code != nil {
		out.Code = *code
	}
	return out
}

// Wrap adds context to err while keeping its code and metadata
func Wrap(err error, message string) *Error {
	return wrap(err, nil, message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...interface{}) *Error {
	return wrap(err, nil, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and replaces its code
func WrapWithCode(err error, code Code, message string) *Error {
	return wrap(err, &code, message)
}

// WrapWithCodef is WrapWithCode with a formatted message
func WrapWithCodef(err error, code Code, format string, args ...interface{}) *Error {
	return wrap(err, &code, fmt.Sprintf(format, args...))
}

// NotFound reports a missing run or table entry
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf is NotFound with a formatted message
func NotFoundf(format string, args ...interface{}) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

// InvalidArgument reports bad input, including configs that can never generate
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...interface{}) *Error {
	return New(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

// AlreadyExists reports a run id collision
func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

// AlreadyExistsf is AlreadyExists with a formatted message
func AlreadyExistsf(format string, args ...interface{}) *Error {
	return New(CodeAlreadyExists, fmt.Sprintf(format, args...))
}

// PermissionDenied reports a door into the boss room that skips the prepare room
func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, message)
}

// Internalf reports a broken invariant inside the service
func Internalf(format string, args ...interface{}) *Error {
	return New(CodeInternal, fmt.Sprintf(format, args...))
}

// ResourceExhausted reports that the generator used up its attempts
func ResourceExhausted(message string) *Error {
	return New(CodeResourceExhausted, message)
}

// ResourceExhaustedf is ResourceExhausted with a formatted message
func ResourceExhaustedf(format string, args ...interface{}) *Error {
	return New(CodeResourceExhausted, fmt.Sprintf(format, args...))
}

// FailedPrecondition reports a locked door or a run that already ended
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

// FailedPreconditionf is FailedPrecondition with a formatted message
func FailedPreconditionf(format string, args ...interface{}) *Error {
	return New(CodeFailedPrecondition, fmt.Sprintf(format, args...))
}

// Canceled reports that the caller gave up, usually through its context
func Canceled(message string) *Error {
	return New(CodeCanceled, message)
}

// Unavailable reports that storage could not be reached
func Unavailable(message string) *Error {
	return New(CodeUnavailable, message)
}
