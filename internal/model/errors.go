package model

import "errors"

// Kind classifies a domain error for the transport layer.
type Kind string

const (
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindInternal        Kind = "INTERNAL_ERROR"
)

// Error is a domain sentinel carrying its Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Shared errors
var (
	ErrUnauthorized  = newError(KindUnauthorized, "authentication required")
	ErrInvalidCursor = newError(KindInvalidArgument, "cursor must be a non-negative integer")
	ErrInvalidScope  = newError(KindInvalidArgument, "unknown feed scope")
)
