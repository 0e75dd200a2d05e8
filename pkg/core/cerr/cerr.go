// Package cerr provides the categorized error type which the use
// cases layer uses to classify failures. Each category maps to one
// HTTP status code, so the REST adapter can serialize any error
// without inspecting provider-specific details. Errors which carry no
// category (e.g., raw storage failures) are treated as internal
// server errors at the boundary.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest marks missing or malformed input, caught before any
// storage call.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict marks state preconditions which the driver must resolve
// manually, such as a same-day session bound to another vehicle or a
// transaction attempted without an open day.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}
