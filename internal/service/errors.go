package service

import (
	"errors"

	"github.com/Freeeeeet/tutorlink/internal/repository/base"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds. Operations return them wrapped in *Error so callers can match
// with errors.Is and still show the message to the user.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrAlreadyApplied   = errors.New("already applied")
	ErrDuplicatePending = errors.New("duplicate pending request")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidStatus    = errors.New("invalid status")
)

// Error is a user-facing failure of a known kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// StoreError is a failure reported by the data store. It is not interpreted:
// the store's own message is what the client sees.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	var pgErr *pgconn.PgError
	if errors.As(e.Err, &pgErr) {
		return pgErr.Message
	}
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// writeError translates a repository write failure: a write that matched no row
// becomes a NotFound with the given message, anything else a StoreError.
func writeError(op string, err error, notFoundMessage string) error {
	if base.IsNotFound(err) {
		return newError(ErrNotFound, notFoundMessage)
	}
	return storeError(op, err)
}
