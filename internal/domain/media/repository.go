package media

import (
	"context"

	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

type PhotoRepository interface {
	Create(ctx context.Context, p *models.Photo) error
	GetByID(ctx context.Context, id uint) (*models.Photo, error)
	GetForUser(ctx context.Context, id, userID uint) (*models.Photo, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Photo, error)
	Delete(ctx context.Context, id, userID uint) error
}

type GeneratedImageRepository interface {
	Create(ctx context.Context, img *models.GeneratedImage) error
	GetForUser(ctx context.Context, id, userID uint) (*models.GeneratedImage, error)
	ListByUser(ctx context.Context, userID uint) ([]models.GeneratedImage, error)
	Delete(ctx context.Context, id, userID uint) error
}
