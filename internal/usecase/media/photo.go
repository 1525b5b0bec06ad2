package media

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainMedia "github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/imaging"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

var ErrPhotoNotFound = httperr.ErrBusiness("photo_not_found")

func photoNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrPhotoNotFound
	}
	return err
}

func withURL(store domainMedia.ObjectStore, photos []models.Photo) []models.Photo {
	for i := range photos {
		photos[i].URL = store.PublicURL(photos[i].Key)
	}
	return photos
}

// ======================================================
// UPLOAD
// ======================================================

type UploadPhoto struct {
	photos domainMedia.PhotoRepository
	store  domainMedia.ObjectStore
	audit  audit.Recorder
	now    func() time.Time
}

func NewUploadPhoto(photos domainMedia.PhotoRepository, store domainMedia.ObjectStore, audit audit.Recorder) *UploadPhoto {
	return &UploadPhoto{photos: photos, store: store, audit: audit, now: time.Now}
}

func (uc *UploadPhoto) Execute(
	ctx context.Context,
	userID uint,
	filename string,
	data []byte,
	meta validators.PhotoMeta,
) (*models.Photo, error) {

	body, err := PrepareImage(data)
	if err != nil {
		return nil, err
	}

	key := UploadKey("galeria", uc.now(), userID, filename)
	if err := StoreObject(ctx, uc.store, key, body, imaging.ContentType); err != nil {
		return nil, err
	}

	p := &models.Photo{
		UserID:    userID,
		Key:       key,
		Titulo:    meta.Titulo,
		Descricao: meta.Descricao,
	}
	if err := uc.photos.Create(ctx, p); err != nil {
		DiscardObject(ctx, uc.store, key)
		return nil, err
	}
	p.URL = uc.store.PublicURL(key)

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "photo_uploaded",
		Entity:   "photo",
		EntityID: &p.ID,
	})

	return p, nil
}

// ======================================================
// READ
// ======================================================

type ListPhotos struct {
	photos domainMedia.PhotoRepository
	store  domainMedia.ObjectStore
}

func NewListPhotos(photos domainMedia.PhotoRepository, store domainMedia.ObjectStore) *ListPhotos {
	return &ListPhotos{photos: photos, store: store}
}

// Execute lists a user's gallery. The gallery is public, so userID may be
// any account.
func (uc *ListPhotos) Execute(ctx context.Context, userID uint) ([]models.Photo, error) {
	photos, err := uc.photos.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return withURL(uc.store, photos), nil
}

type GetPhoto struct {
	photos domainMedia.PhotoRepository
	store  domainMedia.ObjectStore
}

func NewGetPhoto(photos domainMedia.PhotoRepository, store domainMedia.ObjectStore) *GetPhoto {
	return &GetPhoto{photos: photos, store: store}
}

func (uc *GetPhoto) Execute(ctx context.Context, id uint) (*models.Photo, error) {
	p, err := uc.photos.GetByID(ctx, id)
	if err != nil {
		return nil, photoNotFound(err)
	}
	p.URL = uc.store.PublicURL(p.Key)
	return p, nil
}

// ======================================================
// DELETE
// ======================================================

type DeletePhoto struct {
	photos domainMedia.PhotoRepository
	store  domainMedia.ObjectStore
	audit  audit.Recorder
}

func NewDeletePhoto(photos domainMedia.PhotoRepository, store domainMedia.ObjectStore, audit audit.Recorder) *DeletePhoto {
	return &DeletePhoto{photos: photos, store: store, audit: audit}
}

// Execute removes the object first; if that fails the row stays.
func (uc *DeletePhoto) Execute(ctx context.Context, userID, id uint) error {
	p, err := uc.photos.GetForUser(ctx, id, userID)
	if err != nil {
		return photoNotFound(err)
	}

	if err := RemoveObject(ctx, uc.store, p.Key); err != nil {
		return err
	}

	if err := uc.photos.Delete(ctx, id, userID); err != nil {
		return photoNotFound(err)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "photo_deleted",
		Entity:   "photo",
		EntityID: &id,
	})
	return nil
}
