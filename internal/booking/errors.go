package booking

import "errors"

// Kind classifies a failed operation so the boundary can tell "fix your
// input" from "not allowed" from "try a different slot".
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindSlotUnavailable
	KindForbidden
	KindInvalidState
	KindNotFound
	KindPersistence
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func slotUnavailable() *Error {
	return &Error{Kind: KindSlotUnavailable, Message: "another appointment already exists at this date and time"}
}

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func invalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func notFound() *Error {
	return &Error{Kind: KindNotFound, Message: "appointment not found"}
}

func persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "storage failure", Err: err}
}

// KindOf extracts the kind from any error returned by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
