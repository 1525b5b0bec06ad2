package client

import (
	"context"

	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Client) error
	GetForUser(ctx context.Context, id, userID uint) (*models.Client, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Client, error)

	// FindByName is an exact, case-sensitive match within one owner.
	FindByName(ctx context.Context, userID uint, nome string) ([]models.Client, error)

	// FindByPhone is not owner-scoped.
	FindByPhone(ctx context.Context, telefone string) ([]models.Client, error)

	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id, userID uint) error
}
