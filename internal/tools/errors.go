package tools

import (
	"errors"
	"fmt"
)

// Kind classifies tool call failures.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArguments
	KindUnknownOperation
	KindDivisionByZero
	KindMethodNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArguments:
		return "invalid_arguments"
	case KindUnknownOperation:
		return "unknown_operation"
	case KindDivisionByZero:
		return "division_by_zero"
	case KindMethodNotFound:
		return "method_not_found"
	default:
		return "internal_error"
	}
}

// Error is a classified tool failure. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error of the given kind with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps err as an internal failure, keeping its text as message.
// Errors that are already classified are returned unchanged.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}

// KindOf reports the Kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindInternal
}

var errMissingText = NewError(KindInvalidArguments, "Missing 'text' parameter")

func stringArg(args Arguments, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
