package account

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainUser "github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/metrics"
)

// ======================================================
// RECOVER
// ======================================================

type RecoverConfig struct {
	ResetURL string
	TTL      time.Duration
}

type RecoverPassword struct {
	users    domainUser.Repository
	identity domainUser.IdentityProvider
	tokens   domainUser.ResetTokenStore
	mailer   domainUser.Mailer
	cfg      RecoverConfig
}

func NewRecoverPassword(
	users domainUser.Repository,
	identity domainUser.IdentityProvider,
	tokens domainUser.ResetTokenStore,
	mailer domainUser.Mailer,
	cfg RecoverConfig,
) *RecoverPassword {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &RecoverPassword{users: users, identity: identity, tokens: tokens, mailer: mailer, cfg: cfg}
}

// Execute never reports whether the address is registered. Failures are
// logged only.
func (uc *RecoverPassword) Execute(ctx context.Context, email, redirectTo string) {
	log := logrus.WithField("email", email)

	if uc.identity != nil {
		if redirectTo == "" {
			redirectTo = uc.cfg.ResetURL
		}
		if err := uc.identity.SendRecovery(ctx, email, redirectTo); err != nil {
			metrics.UpstreamFailure("identity", "recover")
			log.WithError(err).Warn("password recovery request failed")
		}
		return
	}

	if uc.tokens == nil || uc.mailer == nil {
		log.Warn("password recovery requested but reset store or mailer is not configured")
		return
	}

	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.WithError(err).Error("password recovery lookup failed")
		}
		return
	}

	token := uuid.NewString()
	if err := uc.tokens.Save(ctx, token, u.ID, uc.cfg.TTL); err != nil {
		metrics.UpstreamFailure("redis", "save_reset_token")
		log.WithError(err).Error("could not store reset token")
		return
	}

	link, err := resetLink(uc.cfg.ResetURL, token)
	if err != nil {
		log.WithError(err).Error("invalid PASSWORD_RESET_URL")
		return
	}

	if err := uc.mailer.SendPasswordReset(ctx, u.Email, u.Nome, link, uc.cfg.TTL); err != nil {
		metrics.UpstreamFailure("mail", "password_reset")
		log.WithError(err).Error("could not send reset e-mail")
	}
}

func resetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ======================================================
// CHANGE
// ======================================================

type ChangePassword struct {
	users    domainUser.Repository
	identity domainUser.IdentityProvider
	tokens   domainUser.ResetTokenStore
	audit    audit.Recorder
	cost     int
}

func NewChangePassword(
	users domainUser.Repository,
	identity domainUser.IdentityProvider,
	tokens domainUser.ResetTokenStore,
	audit audit.Recorder,
) *ChangePassword {
	return &ChangePassword{
		users:    users,
		identity: identity,
		tokens:   tokens,
		audit:    audit,
		cost:     bcrypt.DefaultCost,
	}
}

func (uc *ChangePassword) WithCost(cost int) *ChangePassword {
	uc.cost = cost
	return uc
}

// Execute accepts a reset token from our own store, or a provider access
// token when an identity provider is configured.
func (uc *ChangePassword) Execute(ctx context.Context, token, novaSenha string) error {
	var userID uint

	if uc.identity != nil {
		id, err := uc.identity.GetIdentity(ctx, token)
		if errors.Is(err, domainUser.ErrIdentityRejected) {
			return ErrInvalidResetToken
		}
		if err != nil {
			metrics.UpstreamFailure("identity", "get_user")
			return fmt.Errorf("resolve reset token: %w", err)
		}

		u, err := localAccount(ctx, uc.users, id)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		userID = u.ID

		if err := uc.identity.UpdatePassword(ctx, token, novaSenha); err != nil {
			if errors.Is(err, domainUser.ErrIdentityRejected) {
				return ErrInvalidResetToken
			}
			metrics.UpstreamFailure("identity", "update_password")
			return fmt.Errorf("update remote password: %w", err)
		}
	} else {
		if uc.tokens == nil {
			return ErrInvalidResetToken
		}
		id, err := uc.tokens.Consume(ctx, token)
		if errors.Is(err, domainUser.ErrResetTokenInvalid) {
			return ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		userID = id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(novaSenha), uc.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := uc.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "password_changed",
		Entity:   "user",
		EntityID: &userID,
	})
	return nil
}
