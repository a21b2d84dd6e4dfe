package core

import (
	"errors"
	"net/http"
)

var (
	// ErrTokenExpired is returned when a token carries a valid signature but
	// its expiry has passed. Callers must be able to tell this apart from
	// ErrTokenInvalid.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned for malformed, tampered or wrongly-signed tokens.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrNoSession is returned when no refresh token is on record for a subject.
	ErrNoSession = errors.New("no session on record")

	// ErrSessionMismatch is returned when the presented refresh token does not
	// equal the stored one.
	ErrSessionMismatch = errors.New("refresh token mismatch")
)

// AuthError is a business error with a stable machine-checkable code and the
// HTTP status it maps to at the transport boundary.
type AuthError struct {
	Code    string
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var (
	ErrMemberNotFound      = &AuthError{Code: "MEMBER_NOT_FOUND", Status: http.StatusNotFound, Message: "member does not exist"}
	ErrLoginFailure        = &AuthError{Code: "LOGIN_FAILURE", Status: http.StatusBadRequest, Message: "login failed"}
	ErrEmailDuplication    = &AuthError{Code: "EMAIL_DUPLICATION", Status: http.StatusConflict, Message: "email is already in use"}
	ErrNicknameDuplication = &AuthError{Code: "NICKNAME_DUPLICATION", Status: http.StatusConflict, Message: "nickname is already in use"}
	ErrInvalidToken        = &AuthError{Code: "INVALID_TOKEN", Status: http.StatusUnauthorized, Message: "invalid token"}
)
