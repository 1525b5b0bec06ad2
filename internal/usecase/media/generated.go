package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainMedia "github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/metrics"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

var (
	ErrImageNotFound    = httperr.ErrBusiness("image_not_found")
	ErrGenerationFailed = httperr.ErrBusiness("generation_failed")
)

func imageNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrImageNotFound
	}
	return err
}

// ======================================================
// GENERATE
// ======================================================

type GenerateImage struct {
	generator domainMedia.ImageGenerator
	images    domainMedia.GeneratedImageRepository
	store     domainMedia.ObjectStore
	audit     audit.Recorder
	now       func() time.Time
}

func NewGenerateImage(
	generator domainMedia.ImageGenerator,
	images domainMedia.GeneratedImageRepository,
	store domainMedia.ObjectStore,
	audit audit.Recorder,
) *GenerateImage {
	return &GenerateImage{generator: generator, images: images, store: store, audit: audit, now: time.Now}
}

func (uc *GenerateImage) Execute(ctx context.Context, userID uint, prompt string) (*models.GeneratedImage, error) {
	out, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		metrics.UpstreamFailure("genai", "generate")
		logrus.WithError(err).WithField("user_id", userID).Error("image generation failed")
		return nil, ErrGenerationFailed
	}

	key := fmt.Sprintf("generated/images/%d-%d.%s", userID, uc.now().UnixMilli(), domainMedia.ExtensionFor(out.MimeType))
	if err := StoreObject(ctx, uc.store, key, out.Data, out.MimeType); err != nil {
		return nil, err
	}

	img := &models.GeneratedImage{
		UserID: userID,
		URL:    uc.store.PublicURL(key),
		Prompt: prompt,
	}
	if err := uc.images.Create(ctx, img); err != nil {
		DiscardObject(ctx, uc.store, key)
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "image_generated",
		Entity:   "generated_image",
		EntityID: &img.ID,
	})

	return img, nil
}

// ======================================================
// GALLERY
// ======================================================

type ListGenerated struct {
	images domainMedia.GeneratedImageRepository
}

func NewListGenerated(images domainMedia.GeneratedImageRepository) *ListGenerated {
	return &ListGenerated{images: images}
}

func (uc *ListGenerated) Execute(ctx context.Context, userID uint) ([]models.GeneratedImage, error) {
	return uc.images.ListByUser(ctx, userID)
}

type GetGenerated struct {
	images domainMedia.GeneratedImageRepository
}

func NewGetGenerated(images domainMedia.GeneratedImageRepository) *GetGenerated {
	return &GetGenerated{images: images}
}

func (uc *GetGenerated) Execute(ctx context.Context, userID, id uint) (*models.GeneratedImage, error) {
	img, err := uc.images.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, imageNotFound(err)
	}
	return img, nil
}

type DeleteGenerated struct {
	images domainMedia.GeneratedImageRepository
	store  domainMedia.ObjectStore
	audit  audit.Recorder
}

func NewDeleteGenerated(
	images domainMedia.GeneratedImageRepository,
	store domainMedia.ObjectStore,
	audit audit.Recorder,
) *DeleteGenerated {
	return &DeleteGenerated{images: images, store: store, audit: audit}
}

func (uc *DeleteGenerated) Execute(ctx context.Context, userID, id uint) error {
	img, err := uc.images.GetForUser(ctx, id, userID)
	if err != nil {
		return imageNotFound(err)
	}

	if err := RemoveObject(ctx, uc.store, uc.store.KeyFromURL(img.URL)); err != nil {
		return err
	}

	if err := uc.images.Delete(ctx, id, userID); err != nil {
		return imageNotFound(err)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "image_deleted",
		Entity:   "generated_image",
		EntityID: &id,
	})
	return nil
}
