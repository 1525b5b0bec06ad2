package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ink-agenda/internal/domain/client"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) Create(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) GetForUser(ctx context.Context, id, userID uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ClientGormRepository) ListByUser(ctx context.Context, userID uint) ([]models.Client, error) {
	var out []models.Client
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("nome ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientGormRepository) FindByName(ctx context.Context, userID uint, nome string) ([]models.Client, error) {
	var out []models.Client
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND nome = ?", userID, nome).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientGormRepository) FindByPhone(ctx context.Context, telefone string) ([]models.Client, error) {
	var out []models.Client
	if err := r.db.WithContext(ctx).
		Where("telefone = ?", telefone).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientGormRepository) Update(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).
		Model(c).
		Select("nome", "telefone", "descricao", "endereco").
		Updates(c).Error
}

func (r *ClientGormRepository) Delete(ctx context.Context, id, userID uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Client{}))
}

var _ domain.Repository = (*ClientGormRepository)(nil)
