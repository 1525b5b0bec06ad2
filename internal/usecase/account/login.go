package account

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainUser "github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/dto"
	"github.com/BruksfildServices01/ink-agenda/internal/metrics"
)

// dummyHash keeps the unknown-email path as slow as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ink-agenda-dummy-password"), bcrypt.DefaultCost)

type Login struct {
	users    domainUser.Repository
	tokens   TokenIssuer
	identity domainUser.IdentityProvider
}

// NewLogin checks credentials locally and issues tokens with tokens, unless
// identity is set, in which case the provider does both.
func NewLogin(users domainUser.Repository, tokens TokenIssuer, identity domainUser.IdentityProvider) *Login {
	return &Login{users: users, tokens: tokens, identity: identity}
}

func (uc *Login) Execute(ctx context.Context, email, senha string) (*dto.LoginResponse, error) {
	if uc.identity != nil {
		return uc.remote(ctx, email, senha)
	}

	u, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(senha))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Senha), []byte(senha)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: token, User: u}, nil
}

func (uc *Login) remote(ctx context.Context, email, senha string) (*dto.LoginResponse, error) {
	token, id, err := uc.identity.SignIn(ctx, email, senha)
	if errors.Is(err, domainUser.ErrIdentityRejected) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		metrics.UpstreamFailure("identity", "sign_in")
		return nil, fmt.Errorf("sign in: %w", err)
	}

	u, err := localAccount(ctx, uc.users, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: token, User: u}, nil
}
