package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	domainUser "github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/metrics"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

type Register struct {
	users    domainUser.Repository
	identity domainUser.IdentityProvider
	audit    audit.Recorder
	check    DomainCheck
	cost     int
}

// NewRegister builds the sign-up flow. A nil identity provider keeps
// credentials local only; a nil check skips the DNS lookup.
func NewRegister(
	users domainUser.Repository,
	identity domainUser.IdentityProvider,
	audit audit.Recorder,
	check DomainCheck,
) *Register {
	return &Register{
		users:    users,
		identity: identity,
		audit:    audit,
		check:    check,
		cost:     bcrypt.DefaultCost,
	}
}

// WithCost overrides the bcrypt cost.
func (uc *Register) WithCost(cost int) *Register {
	uc.cost = cost
	return uc
}

// Execute expects an already validated request.
func (uc *Register) Execute(ctx context.Context, req validators.RegisterRequest) (*models.User, error) {
	exists, err := uc.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailInUse
	}

	if uc.check != nil && !uc.check(ctx, req.Email) {
		return nil, ErrEmailDomainInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Nome:      req.Nome,
		Sobrenome: req.Sobrenome,
		CPF:       req.CPF,
		Email:     req.Email,
		Senha:     string(hash),
		Telefone:  req.Telefone,
	}

	if uc.identity == nil {
		if err := uc.users.Create(ctx, u); err != nil {
			if httperr.IsUniqueViolation(err) {
				return nil, ErrEmailInUse
			}
			return nil, err
		}
	} else if err := uc.registerRemote(ctx, u, req.Senha); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return u, nil
}

// registerRemote creates the provider identity, then the local row, then
// links them. Each failure undoes the steps already done.
func (uc *Register) registerRemote(ctx context.Context, u *models.User, senha string) error {
	authID, err := uc.identity.CreateIdentity(ctx, u.Email, senha)
	if err != nil {
		if errors.Is(err, domainUser.ErrIdentityRejected) {
			return ErrIdentityRejected
		}
		metrics.UpstreamFailure("identity", "create")
		return fmt.Errorf("create identity: %w", err)
	}
	u.AuthID = &authID

	log := logrus.WithFields(logrus.Fields{"email": u.Email, "auth_id": authID})

	if err := uc.users.Create(ctx, u); err != nil {
		uc.dropIdentity(ctx, log, authID)
		if httperr.IsUniqueViolation(err) {
			return ErrEmailInUse
		}
		return err
	}

	if err := uc.identity.LinkLocalID(ctx, authID, u.ID); err != nil {
		metrics.UpstreamFailure("identity", "link")
		if derr := uc.users.Delete(ctx, u.ID); derr != nil {
			log.WithError(derr).Error("rollback of local user failed")
		}
		uc.dropIdentity(ctx, log, authID)
		return fmt.Errorf("link identity: %w", err)
	}

	return nil
}

func (uc *Register) dropIdentity(ctx context.Context, log *logrus.Entry, authID string) {
	if err := uc.identity.DeleteIdentity(ctx, authID); err != nil {
		metrics.UpstreamFailure("identity", "delete")
		log.WithError(err).Error("rollback of remote identity failed")
	}
}
