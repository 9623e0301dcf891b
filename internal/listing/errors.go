package listing

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the HTTP boundary.
type Kind int

const (
	Internal Kind = iota
	InvalidInput
	Unauthorized
	NotFound
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// StatusCode maps every kind to exactly one HTTP status.
func StatusCode(k Kind) int {
	switch k {
	case InvalidInput:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

const internalMessage = "Internal Server Error"

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

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports Internal for anything that is not an *Error.
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return Internal
}

// PublicMessage is the text safe to put into an error response body.
func PublicMessage(err error) string {
	var lerr *Error
	if errors.As(err, &lerr) && lerr.Kind != Internal && lerr.Message != "" {
		return lerr.Message
	}
	return internalMessage
}

func invalidInput(msg string, cause error) *Error {
	return &Error{Kind: InvalidInput, Message: msg, Err: cause}
}

// ErrUnauthorized is returned for operations that need a session.
var ErrUnauthorized = &Error{Kind: Unauthorized, Message: "Unauthorized user"}

func unauthorized() *Error {
	return ErrUnauthorized
}

func notFound(cause error) *Error {
	return &Error{Kind: NotFound, Message: "Room not found", Err: cause}
}

func internal(cause error) *Error {
	return &Error{Kind: Internal, Message: internalMessage, Err: cause}
}
