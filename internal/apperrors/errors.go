package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Unique-constraint violations on the users table, reported by the storage layer.
var (
	ErrDuplicateEmail    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrDuplicateUsername = fmt.Errorf("%w: username", ErrDuplicate)
)

// AppError is an error with an HTTP status code and a stable, client-facing message.
// Message is one of the codes below (e.g. "invalid-refresh-token"), never internal detail.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors carrying the same status code and message, so a wrapped
// copy of a sentinel still satisfies errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, nil)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

func NewGatewayTimeoutError(message string) *AppError {
	return NewAppError(http.StatusGatewayTimeout, message, nil)
}

// Stable client-correctable codes.
var (
	ErrInvalidEmail          = NewBadRequestError("invalid-email")
	ErrWrongPassword         = NewBadRequestError("wrong-password")
	ErrEmailNotVerified      = NewBadRequestError("email-not-verified")
	ErrEmailAlreadyInUse     = NewBadRequestError("email-already-in-use")
	ErrUsernameAlreadyInUse  = NewBadRequestError("username-already-in-use")
	ErrInvalidToken          = NewBadRequestError("invalid-token")
	ErrInvalidOrExpiredToken = NewBadRequestError("invalid-or-expired-token")
	ErrInvalidRefreshToken   = NewBadRequestError("invalid-refresh-token")
	ErrPasswordDoNotMatch    = NewBadRequestError("password-donot-match")
	ErrNoUserWithThisEmail   = NewBadRequestError("no-user-with-this-email")
	ErrUnauthorized          = NewUnauthorizedError("unauthorized")
	ErrUserNotFound          = NewNotFoundError("user-not-found")
)

// InternalErrorMessage is the only message an internal error ever exposes.
const InternalErrorMessage = "internal-error"

// NewInternalError wraps an unexpected failure. The cause is kept for logging only.
func NewInternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, InternalErrorMessage, err)
}

// NewValidationError reports a request that failed input validation.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// AsAppError reports whether err is (or wraps) an AppError and returns it.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsInternal reports whether err should be surfaced as an opaque server error.
func IsInternal(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || appErr.Code >= http.StatusInternalServerError
}
