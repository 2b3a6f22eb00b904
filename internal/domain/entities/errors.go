package entities

import "errors"

// Error kinds. Every domain failure wraps exactly one of these so the
// transport layer can pick a status class with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrAuthorization  = errors.New("authorization error")
	ErrInvalidState   = errors.New("invalid state")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication error")
)

// kindError carries a caller-facing message and the kind it belongs to.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func NewValidationError(msg string) error     { return &kindError{kind: ErrValidation, msg: msg} }
func NewNotFoundError(msg string) error       { return &kindError{kind: ErrNotFound, msg: msg} }
func NewAuthorizationError(msg string) error  { return &kindError{kind: ErrAuthorization, msg: msg} }
func NewInvalidStateError(msg string) error   { return &kindError{kind: ErrInvalidState, msg: msg} }
func NewConflictError(msg string) error       { return &kindError{kind: ErrConflict, msg: msg} }
func NewAuthenticationError(msg string) error { return &kindError{kind: ErrAuthentication, msg: msg} }
