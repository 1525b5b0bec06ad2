package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainUser "github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

var (
	ErrEmailInUse         = httperr.ErrBusiness("email_in_use")
	ErrEmailDomainInvalid = httperr.ErrBusiness("email_domain_invalid")
	ErrIdentityRejected   = httperr.ErrBusiness("identity_rejected")
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
	ErrInvalidResetToken  = httperr.ErrBusiness("invalid_reset_token")
)

// TokenIssuer signs bearer tokens for local accounts.
type TokenIssuer interface {
	Issue(userID uint, email string) (string, error)
}

// DomainCheck reports whether the e-mail's domain can receive mail.
type DomainCheck func(ctx context.Context, email string) bool

// localAccount finds the row behind a provider identity. Accounts created
// before the auth_id column existed are matched by e-mail and linked.
func localAccount(ctx context.Context, users domainUser.Repository, id domainUser.Identity) (*models.User, error) {
	if id.LocalID != 0 {
		u, err := users.GetByID(ctx, id.LocalID)
		if err == nil || !errors.Is(err, domain.ErrNotFound) {
			return u, err
		}
	}

	if id.AuthID != "" {
		u, err := users.GetByAuthID(ctx, id.AuthID)
		if err == nil || !errors.Is(err, domain.ErrNotFound) {
			return u, err
		}
	}

	u, err := users.GetByEmail(ctx, id.Email)
	if err != nil {
		return nil, err
	}
	if u.AuthID == nil && id.AuthID != "" {
		if err := users.SetAuthID(ctx, u.ID, id.AuthID); err != nil {
			return nil, err
		}
		u.AuthID = &id.AuthID
	}
	return u, nil
}
