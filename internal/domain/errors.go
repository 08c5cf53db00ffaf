package domain

import "errors"

// ErrorCode is the client-visible taxonomy for NDA workflow failures.
type ErrorCode string

const (
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeDuplicateRequest  ErrorCode = "DUPLICATE_REQUEST"
	ErrCodeAlreadySigned     ErrorCode = "ALREADY_SIGNED"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
)

type Error struct {
	Code    ErrorCode
	Message string

	// ExistingID points at the record that already covers the pair, so the UI
	// can route the user to it (duplicate request / already signed).
	ExistingID uint
}

func (e *Error) Error() string { return e.Message }

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewExistingError(code ErrorCode, message string, existingID uint) *Error {
	return &Error{Code: code, Message: message, ExistingID: existingID}
}

// AsError unwraps err into a domain *Error, or nil if it is not one.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}

func IsCode(err error, code ErrorCode) bool {
	de := AsError(err)
	return de != nil && de.Code == code
}
