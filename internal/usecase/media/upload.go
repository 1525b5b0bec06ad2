package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	domainMedia "github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/imaging"
	"github.com/BruksfildServices01/ink-agenda/internal/metrics"
)

var (
	ErrImageRequired    = httperr.ErrBusiness("image_required")
	ErrImageTooLarge    = httperr.ErrBusiness("image_too_large")
	ErrImageUnsupported = httperr.ErrBusiness("image_unsupported")
	ErrStorageFailed    = httperr.ErrBusiness("storage_failed")
)

// PrepareImage re-encodes an upload as bounded WebP.
func PrepareImage(data []byte) ([]byte, error) {
	out, err := imaging.ToWebP(data, imaging.MaxSide)
	switch {
	case errors.Is(err, imaging.ErrEmpty):
		return nil, ErrImageRequired
	case errors.Is(err, imaging.ErrTooLarge):
		return nil, ErrImageTooLarge
	case errors.Is(err, imaging.ErrUnsupported):
		return nil, ErrImageUnsupported
	case err != nil:
		return nil, err
	}
	return out, nil
}

// UploadKey builds {prefix}/{unixMillis}-{userID}-{basename}.webp.
func UploadKey(prefix string, at time.Time, userID uint, filename string) string {
	return fmt.Sprintf("%s/%d-%d-%s.webp", prefix, at.UnixMilli(), userID, imaging.SafeBaseName(filename))
}

// StoreObject uploads body and reports failures as ErrStorageFailed.
func StoreObject(ctx context.Context, store domainMedia.ObjectStore, key string, body []byte, contentType string) error {
	if err := store.Upload(ctx, key, body, contentType); err != nil {
		metrics.UpstreamFailure("storage", "upload")
		logrus.WithError(err).WithField("key", key).Error("object upload failed")
		return ErrStorageFailed
	}
	return nil
}

// RemoveObject deletes key and reports failures as ErrStorageFailed.
func RemoveObject(ctx context.Context, store domainMedia.ObjectStore, key string) error {
	if err := store.Delete(ctx, key); err != nil {
		metrics.UpstreamFailure("storage", "delete")
		logrus.WithError(err).WithField("key", key).Error("object delete failed")
		return ErrStorageFailed
	}
	return nil
}

// DiscardObject is RemoveObject for cleanups whose failure only leaks a file.
func DiscardObject(ctx context.Context, store domainMedia.ObjectStore, key string) {
	_ = RemoveObject(ctx, store, key)
}
