package storage

import "fmt"

// Error codes mirror the domain error codes without importing the domain
// package; the handler layer maps them to HTTP statuses.
const (
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// Error is a storage-specific error with a code and message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *Error) ErrorCode() string {
	return e.Code
}

// ErrFileNotFound indicates no blob exists at the given key.
func ErrFileNotFound(key string) error {
	return &Error{Code: codeNotFound, Message: fmt.Sprintf("file not found: %s", key)}
}

// ErrUnknownProvider indicates an unrecognized STORAGE_PROVIDER value.
func ErrUnknownProvider(provider string) error {
	return &Error{Code: codeInvalid, Message: fmt.Sprintf("unknown storage provider: %s", provider)}
}

// ErrInvalidKey indicates a key that escapes the storage root.
func ErrInvalidKey(key string) error {
	return &Error{Code: codeInvalid, Message: fmt.Sprintf("invalid storage key: %s", key)}
}
