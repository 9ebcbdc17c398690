package auth

import "errors"

var (
	// ErrConfiguration means the admin credentials or signing secret are not configured
	ErrConfiguration = errors.New("admin credentials or token secret not configured")
	// ErrValidation means the login request is missing email or password
	ErrValidation = errors.New("email and password are required")
	// ErrInvalidCredentials means the supplied email or password does not match
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	// ErrMissingToken means no bearer token was presented
	ErrMissingToken = errors.New("authorization token is required")
	// ErrInvalidToken covers malformed, badly signed and expired tokens
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrRevoked means the token was explicitly revoked by logout
	ErrRevoked = errors.New("token has been revoked")
)
