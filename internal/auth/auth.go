package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken covers malformed, expired and unknown tokens (403).
	ErrInvalidToken = errors.New("invalid token")

	// ErrMisconfigured means the token could not be checked at all (500).
	ErrMisconfigured = errors.New("auth provider misconfigured")
)

// Caller is the identity attached to an authenticated request.
type Caller struct {
	UserID uint
	Email  string
}

type TokenResolver interface {
	Resolve(ctx context.Context, token string) (Caller, error)
}
