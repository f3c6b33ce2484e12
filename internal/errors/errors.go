package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for unknown email, wrong password and
	// password-less OAuth accounts alike, so callers cannot probe which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUsernameTaken is returned when the requested username already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when the requested email already exists.
	ErrEmailTaken = errors.New("email already exists")
	// ErrAccountNotActivated is returned on sign-in before email activation.
	ErrAccountNotActivated = errors.New("account is not activated, check your email for the activation link")
	// ErrAccountLocked is returned when an administrator has deactivated the account.
	ErrAccountLocked = errors.New("account is locked")
	// ErrInvalidRequest covers unknown users and mismatched activation/reset
	// tokens; deliberately uniform to prevent user enumeration.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrWrongPassword is returned when the current password check fails on a
	// password update.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrPasswordLoginDisabled is returned when a password operation is attempted
	// on an OAuth-only account.
	ErrPasswordLoginDisabled = errors.New("password login is disabled for this account")
	// ErrChatContextNotFound is returned when the user does not own the context.
	ErrChatContextNotFound = errors.New("chat context not found")
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// MapError folds a domain error into an HTTP status and user-facing message.
// Unrecognized errors become an opaque 500 so internals never reach the client.
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrPasswordLoginDisabled):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrAccountNotActivated),
		errors.Is(err, ErrAccountLocked),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrChatContextNotFound):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
