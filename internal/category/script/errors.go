package script

import (
	"errors"
	"fmt"
)

// Kind classifies script category failures.
type Kind int

const (
	// KindInternal means a host-side invariant was violated, such as an
	// unusable module handle. It indicates a defect.
	KindInternal Kind = iota + 1

	// KindScript means the interpreter raised an exception during import or
	// a call. The exception has already been printed to diagnostics.
	KindScript

	// KindIncorrectReturnType means the script returned a value of the wrong
	// shape. Report it to the script author.
	KindIncorrectReturnType

	// KindMisc means the host environment failed independently of the
	// script, for example the working directory could not be resolved.
	KindMisc
)

// Sentinel errors matched by *Error of the corresponding kind.
var (
	ErrInternal            = errors.New("internal error")
	ErrScript              = errors.New("script error")
	ErrIncorrectReturnType = errors.New("incorrect return type")
	ErrMisc                = errors.New("misc error")
)

// String returns the label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal_error"
	case KindScript:
		return "script_error"
	case KindIncorrectReturnType:
		return "incorrect_return_type"
	case KindMisc:
		return "misc_error"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInternal:
		return ErrInternal
	case KindScript:
		return ErrScript
	case KindIncorrectReturnType:
		return ErrIncorrectReturnType
	case KindMisc:
		return ErrMisc
	default:
		return nil
	}
}

// Error is returned by every script category operation, construction
// included.
type Error struct {
	Kind   Kind
	Module string // Module identifier of the category
	Reason string // Human-readable cause; may be empty for KindScript
	Err    error  // Underlying error, if any
}

// Error formats the error as "<module>: <kind>: <reason>: <cause>".
func (e *Error) Error() string {
	msg := fmt.Sprintf("script category %q: %s", e.Module, e.Kind.sentinel())
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of err if it is or wraps an *Error, and zero
// otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func internalError(module string, err error) *Error {
	return &Error{Kind: KindInternal, Module: module, Reason: "module handle is unusable", Err: err}
}

func scriptError(module, reason string, err error) *Error {
	return &Error{Kind: KindScript, Module: module, Reason: reason, Err: err}
}

func incorrectReturnType(module, reason string) *Error {
	return &Error{Kind: KindIncorrectReturnType, Module: module, Reason: reason}
}

func miscError(module, reason string, err error) *Error {
	return &Error{Kind: KindMisc, Module: module, Reason: reason, Err: err}
}
