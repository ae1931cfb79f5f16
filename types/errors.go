package types

import (
	"fmt"
)

// ErrorKind is the stable classification of an InterpolationError, one per Guarantee
type ErrorKind uint8

const (
	SortOrderViolation ErrorKind = iota
	InsufficientLength
	NonMonotonicInput
	OutOfDomain
)

func (k ErrorKind) String() string {
	switch k {
	case SortOrderViolation:
		return "SortOrderViolation"
	case InsufficientLength:
		return "InsufficientLength"
	case NonMonotonicInput:
		return "NonMonotonicInput"
	case OutOfDomain:
		return "OutOfDomain"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Guarantee returns the precondition whose validation produces this kind of error
func (k ErrorKind) Guarantee() Guarantee {
	switch k {
	case SortOrderViolation:
		return Sorted
	case InsufficientLength:
		return SufficientLength
	case NonMonotonicInput:
		return Monotonous
	default:
		return InBounds
	}
}

/*
InterpolationError is returned by every fallible entry point. Callers branch on
Kind, the Message names the offending values or indices and is not meant to be parsed.
*/
type InterpolationError struct {
	Kind    ErrorKind
	Message string
}

func NewInterpolationError(kind ErrorKind, format string, args ...interface{}) *InterpolationError {
	return &InterpolationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *InterpolationError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// Is matches any InterpolationError of the same Kind, so the sentinels below work with errors.Is
func (e *InterpolationError) Is(target error) bool {
	t, ok := target.(*InterpolationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrSortOrder          = &InterpolationError{Kind: SortOrderViolation, Message: "input is not sorted"}
	ErrInsufficientLength = &InterpolationError{Kind: InsufficientLength, Message: "input is too short"}
	ErrNonMonotonic       = &InterpolationError{Kind: NonMonotonicInput, Message: "input is not strictly increasing"}
	ErrOutOfDomain        = &InterpolationError{Kind: OutOfDomain, Message: "value outside of the domain"}
)
