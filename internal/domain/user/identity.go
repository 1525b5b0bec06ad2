package user

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrIdentityRejected means the provider refused the request itself
	// (bad credentials, invalid token, duplicate account).
	ErrIdentityRejected = errors.New("identity provider rejected the request")

	// ErrIdentityNotConfigured means the provider cannot be reached with the
	// current configuration.
	ErrIdentityNotConfigured = errors.New("identity provider not configured")

	ErrResetTokenInvalid = errors.New("reset token invalid or expired")
)

// Identity is the provider-side view of an account.
type Identity struct {
	AuthID  string
	Email   string
	LocalID uint
}

// IdentityProvider is an external auth service holding credentials.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, Identity, error)
	LinkLocalID(ctx context.Context, authID string, localID uint) error
	DeleteIdentity(ctx context.Context, authID string) error
	SendRecovery(ctx context.Context, email, redirectTo string) error
	GetIdentity(ctx context.Context, accessToken string) (Identity, error)
	UpdatePassword(ctx context.Context, accessToken, password string) error
}

// ResetTokenStore keeps single-use password reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Consume(ctx context.Context, token string) (uint, error)
}

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, link string, ttl time.Duration) error
}
