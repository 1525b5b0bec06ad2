package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/ink-agenda/internal/domain/user"
)

var errNoLocalID = errors.New("identity has no local account")

// IdentityResolver verifies tokens against an external identity provider and
// maps them to the local account stored in the provider metadata.
type IdentityResolver struct {
	provider user.IdentityProvider
}

func NewIdentityResolver(p user.IdentityProvider) *IdentityResolver {
	return &IdentityResolver{provider: p}
}

func (r *IdentityResolver) Resolve(ctx context.Context, token string) (Caller, error) {
	id, err := r.provider.GetIdentity(ctx, token)
	switch {
	case errors.Is(err, user.ErrIdentityRejected):
		return Caller{}, ErrInvalidToken
	case err != nil:
		return Caller{}, fmt.Errorf("%w: %v", ErrMisconfigured, err)
	}

	if id.LocalID == 0 {
		return Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, errNoLocalID)
	}
	return Caller{UserID: id.LocalID, Email: id.Email}, nil
}

var _ TokenResolver = (*IdentityResolver)(nil)
