package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can attach an HTTP status.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindNotFound
	KindInvalidOperation
	KindInternal
)

// Error is a classified failure raised by the managers. Message is safe to
// return to clients as-is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func InvalidInputf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperationf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func Internalf(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the classification of err. Unclassified errors count as
// internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
