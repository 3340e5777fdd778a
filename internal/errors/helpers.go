package errors

import (
	"errors"
)

// As is errors.As, re-exported so callers need only this package
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is. Two *Error values match when their codes match.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost *Error. Nil is OK and any
// foreign error counts as Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error
func GetMeta(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// GetMessage returns the player-facing message, falling back to Error()
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

// HasCode reports whether err carries any of codes
func HasCode(err error, codes ...Code) bool {
	if err == nil {
		return false
	}
	got := GetCode(err)
	for _, c := range codes {
		if got == c {
			return true
		}
	}
	return false
}

// IsNotFound is true for missing runs and unknown states or units
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsInvalidArgument is true for bad requests and configs that can never generate
func IsInvalidArgument(err error) bool {
	return HasCode(err, CodeInvalidArgument)
}

// IsAlreadyExists is true when a run id is taken
func IsAlreadyExists(err error) bool {
	return HasCode(err, CodeAlreadyExists)
}

// IsPermissionDenied is true when a boss door is entered from outside the prepare room
func IsPermissionDenied(err error) bool {
	return HasCode(err, CodePermissionDenied)
}

// IsFailedPrecondition is true for locked or missing doors and finished runs
func IsFailedPrecondition(err error) bool {
	return HasCode(err, CodeFailedPrecondition)
}

// IsResourceExhausted is true when generation ran out of attempts
func IsResourceExhausted(err error) bool {
	return HasCode(err, CodeResourceExhausted)
}

// IsCanceled is true when generation stopped on a done context
func IsCanceled(err error) bool {
	return HasCode(err, CodeCanceled)
}

// IsDoorRefused is true for every way a traversal can be turned away:
// no door, a locked room or a gated boss door
func IsDoorRefused(err error) bool {
	return HasCode(err, CodeFailedPrecondition, CodePermissionDenied)
}

// IsRetryable reports whether the same request may succeed if sent again
func IsRetryable(err error) bool {
	return err != nil && GetCode(err).Retryable()
}
