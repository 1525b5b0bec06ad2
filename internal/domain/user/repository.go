package user

import (
	"context"

	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

type Repository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByAuthID(ctx context.Context, authID string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	SetAuthID(ctx context.Context, id uint, authID string) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	UpdatePhoto(ctx context.Context, id uint, key string) error

	// UpdateProfile applies columns and, when styles is non-nil, replaces the
	// style set, all in one transaction.
	UpdateProfile(ctx context.Context, id uint, columns map[string]any, styles []models.Style) error

	Delete(ctx context.Context, id uint) error
}

type StyleRepository interface {
	List(ctx context.Context) ([]models.Style, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Style, error)
}
