package perfil

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainMedia "github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	domainUser "github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/imaging"
	"github.com/BruksfildServices01/ink-agenda/internal/metrics"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	mediauc "github.com/BruksfildServices01/ink-agenda/internal/usecase/media"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

var (
	ErrUserNotFound         = httperr.ErrBusiness("user_not_found")
	ErrStyleNotFound        = httperr.ErrBusiness("style_not_found")
	ErrEmptyUpdate          = httperr.ErrBusiness("empty_update")
	ErrIdentityDeleteFailed = httperr.ErrBusiness("identity_delete_failed")
)

func userNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func load(ctx context.Context, users domainUser.Repository, store domainMedia.ObjectStore, id uint) (*models.User, error) {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err)
	}
	u.FotoURL = store.PublicURL(u.Foto)
	return u, nil
}

// ======================================================
// GET
// ======================================================

type GetPerfil struct {
	users domainUser.Repository
	store domainMedia.ObjectStore
}

func NewGetPerfil(users domainUser.Repository, store domainMedia.ObjectStore) *GetPerfil {
	return &GetPerfil{users: users, store: store}
}

func (uc *GetPerfil) Execute(ctx context.Context, userID uint) (*models.User, error) {
	return load(ctx, uc.users, uc.store, userID)
}

// ======================================================
// UPDATE
// ======================================================

type UpdatePerfil struct {
	users  domainUser.Repository
	styles domainUser.StyleRepository
	store  domainMedia.ObjectStore
	audit  audit.Recorder
}

func NewUpdatePerfil(
	users domainUser.Repository,
	styles domainUser.StyleRepository,
	store domainMedia.ObjectStore,
	audit audit.Recorder,
) *UpdatePerfil {
	return &UpdatePerfil{users: users, styles: styles, store: store, audit: audit}
}

func (uc *UpdatePerfil) Execute(ctx context.Context, userID uint, p validators.PerfilPatch) (*models.User, error) {
	if p.Empty() {
		return nil, ErrEmptyUpdate
	}

	var styles []models.Style
	if p.ReplaceStyles {
		found, err := uc.styles.FindByIDs(ctx, p.StyleIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(p.StyleIDs) {
			return nil, ErrStyleNotFound
		}
		// non-nil even when empty: clears the set
		styles = append(make([]models.Style, 0, len(found)), found...)
	}

	if err := uc.users.UpdateProfile(ctx, userID, p.Columns, styles); err != nil {
		return nil, userNotFound(err)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "profile_updated",
		Entity:   "user",
		EntityID: &userID,
		Metadata: map[string]any{"fields": columnNames(p)},
	})

	return load(ctx, uc.users, uc.store, userID)
}

func columnNames(p validators.PerfilPatch) []string {
	names := make([]string, 0, len(p.Columns)+1)
	for k := range p.Columns {
		names = append(names, k)
	}
	if p.ReplaceStyles {
		names = append(names, "especialidades")
	}
	return names
}

// ======================================================
// DELETE
// ======================================================

type DeletePerfil struct {
	users    domainUser.Repository
	identity domainUser.IdentityProvider
	store    domainMedia.ObjectStore
	audit    audit.Recorder
}

func NewDeletePerfil(
	users domainUser.Repository,
	identity domainUser.IdentityProvider,
	store domainMedia.ObjectStore,
	audit audit.Recorder,
) *DeletePerfil {
	return &DeletePerfil{users: users, identity: identity, store: store, audit: audit}
}

// Execute deletes the local account (owned rows cascade), then the remote
// identity. A remote failure is reported, but the local delete stands.
func (uc *DeletePerfil) Execute(ctx context.Context, userID uint) error {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return userNotFound(err)
	}

	if err := uc.users.Delete(ctx, userID); err != nil {
		return userNotFound(err)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "profile_deleted",
		Entity:   "user",
		EntityID: &userID,
	})

	if u.Foto != "" {
		mediauc.DiscardObject(ctx, uc.store, u.Foto)
	}

	if uc.identity != nil && u.AuthID != nil {
		if err := uc.identity.DeleteIdentity(ctx, *u.AuthID); err != nil {
			metrics.UpstreamFailure("identity", "delete")
			logrus.WithError(err).
				WithFields(logrus.Fields{"user_id": userID, "auth_id": *u.AuthID}).
				Error("local account deleted but remote identity remains")
			return ErrIdentityDeleteFailed
		}
	}

	return nil
}

// ======================================================
// PHOTO
// ======================================================

type UploadProfilePhoto struct {
	users domainUser.Repository
	store domainMedia.ObjectStore
	audit audit.Recorder
	now   func() time.Time
}

func NewUploadProfilePhoto(users domainUser.Repository, store domainMedia.ObjectStore, audit audit.Recorder) *UploadProfilePhoto {
	return &UploadProfilePhoto{users: users, store: store, audit: audit, now: time.Now}
}

// Execute stores the new photo, points the profile at it, and only then
// drops the previous object.
func (uc *UploadProfilePhoto) Execute(ctx context.Context, userID uint, filename string, data []byte) (string, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return "", userNotFound(err)
	}

	body, err := mediauc.PrepareImage(data)
	if err != nil {
		return "", err
	}

	key := mediauc.UploadKey("imagens/perfil", uc.now(), userID, filename)
	if err := mediauc.StoreObject(ctx, uc.store, key, body, imaging.ContentType); err != nil {
		return "", err
	}

	if err := uc.users.UpdatePhoto(ctx, userID, key); err != nil {
		mediauc.DiscardObject(ctx, uc.store, key)
		return "", userNotFound(err)
	}

	if old := u.Foto; old != "" && old != key {
		mediauc.DiscardObject(ctx, uc.store, old)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "profile_photo_updated",
		Entity:   "user",
		EntityID: &userID,
	})

	return uc.store.PublicURL(key), nil
}

// ======================================================
// STYLES
// ======================================================

type ListStyles struct {
	styles domainUser.StyleRepository
}

func NewListStyles(styles domainUser.StyleRepository) *ListStyles {
	return &ListStyles{styles: styles}
}

func (uc *ListStyles) Execute(ctx context.Context) ([]models.Style, error) {
	return uc.styles.List(ctx)
}
