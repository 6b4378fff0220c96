// Package httperr is the single place where service failures become HTTP
// responses. Services return *Error values; handlers hand whatever they got
// to Respond. Routes never shape their own failure bodies.
package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
)

// Error is a typed failure with the named-reason or field→message details
// the API returns as its body.
type Error struct {
	Kind    Kind
	Details map[string]string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	for _, msg := range e.Details {
		return msg
	}
	return "request failed"
}

func (e *Error) Unwrap() error { return e.err }

// Validation returns a 400 carrying a field→message map.
func Validation(details map[string]string) *Error {
	return &Error{Kind: KindValidation, Details: details}
}

// Conflict returns a 400 for a duplicate unique field, e.g.
// {"email": "Email already exists"}.
func Conflict(field, message string) *Error {
	return &Error{Kind: KindConflict, Details: map[string]string{field: message}}
}

// Unauthorized returns a 401 with a named reason, e.g.
// {"notauthorized": "User not authorized"}.
func Unauthorized(reason, message string) *Error {
	return &Error{Kind: KindUnauthorized, Details: map[string]string{reason: message}}
}

// NotFound returns a 404 with a named reason, e.g.
// {"postnotfound": "No post found"}.
func NotFound(reason, message string) *Error {
	return &Error{Kind: KindNotFound, Details: map[string]string{reason: message}}
}

// Internal wraps an unexpected error. The cause is logged, not returned to
// the client.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, err: err}
}

// Status maps a kind to its HTTP status code. Validation and conflict share
// 400: both are "the request as stated cannot be accepted".
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as an HTTP response. Non-*Error values are treated as
// internal failures so raw store errors never leak to the client.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}
	if e.Kind == KindInternal {
		log.Printf("internal error: %v", e.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(e.Status(), e.Details)
}
