package apperrors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindMalformed
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Malformed(msg string) error       { return &Error{Kind: KindMalformed, Message: msg} }
func Validation(msg string) error      { return &Error{Kind: KindValidation, Message: msg} }
func Unauthenticated(msg string) error { return &Error{Kind: KindUnauthenticated, Message: msg} }
func Forbidden(msg string) error       { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) error        { return &Error{Kind: KindNotFound, Message: msg} }
func Unavailable(msg string) error     { return &Error{Kind: KindUnavailable, Message: msg} }

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }

// HTTPStatus maps an error to the response code its kind implies.
// Unknown errors are internal.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindMalformed, KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
