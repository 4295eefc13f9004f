package constants

import "errors"

// Error taxonomy codes. These mirror HTTP status numbering because that is
// what the backend reports; they are carried on OperationError, not compared
// against raw responses anywhere above the transport.
const (
	CodeBadRequest         = 400
	CodeUnauthorized       = 401
	CodeOperationFailed    = 420
	CodeServiceUnavailable = 503
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("cannot connect to backend")
	ErrInvalidResponse    = errors.New("invalid backend response")
	ErrNoBaseURL          = errors.New("base url not set")
	ErrNoDatabase         = errors.New("database not set")
	ErrNoSession          = errors.New("no active session")
	ErrEmptyCredentials   = errors.New("username and password are required")
)
