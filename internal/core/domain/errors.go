package domain

import "errors"

var (
	// ErrNotAuthenticated covers every failure of the current-user resolver:
	// missing header, bad scheme, invalid or expired token, empty subject,
	// or a subject that matches no user. Callers must not distinguish them.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. One error for both, so the response
	// never reveals which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned by the token verifier for malformed,
	// tampered, or expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	ErrEmailTaken = errors.New("email already registered")
	ErrCPFTaken   = errors.New("cpf already registered")

	ErrUserNotFound   = errors.New("user not found")
	ErrClientNotFound = errors.New("client not found")

	ErrForbidden = errors.New("access forbidden")

	// ErrTooManyAttempts is returned when the login rate limiter trips.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
