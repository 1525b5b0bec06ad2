package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

// ======================================================
// PHOTOS (galeria)
// ======================================================

type PhotoGormRepository struct {
	db *gorm.DB
}

func NewPhotoGormRepository(db *gorm.DB) *PhotoGormRepository {
	return &PhotoGormRepository{db: db}
}

func (r *PhotoGormRepository) Create(ctx context.Context, p *models.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PhotoGormRepository) GetByID(ctx context.Context, id uint) (*models.Photo, error) {
	var p models.Photo
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PhotoGormRepository) GetForUser(ctx context.Context, id, userID uint) (*models.Photo, error) {
	var p models.Photo
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PhotoGormRepository) ListByUser(ctx context.Context, userID uint) ([]models.Photo, error) {
	var out []models.Photo
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PhotoGormRepository) Delete(ctx context.Context, id, userID uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Photo{}))
}

var _ domain.PhotoRepository = (*PhotoGormRepository)(nil)

// ======================================================
// GENERATED IMAGES (IA)
// ======================================================

type GeneratedImageGormRepository struct {
	db *gorm.DB
}

func NewGeneratedImageGormRepository(db *gorm.DB) *GeneratedImageGormRepository {
	return &GeneratedImageGormRepository{db: db}
}

func (r *GeneratedImageGormRepository) Create(ctx context.Context, img *models.GeneratedImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *GeneratedImageGormRepository) GetForUser(ctx context.Context, id, userID uint) (*models.GeneratedImage, error) {
	var img models.GeneratedImage
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&img).Error; err != nil {
		return nil, translate(err)
	}
	return &img, nil
}

func (r *GeneratedImageGormRepository) ListByUser(ctx context.Context, userID uint) ([]models.GeneratedImage, error) {
	var out []models.GeneratedImage
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GeneratedImageGormRepository) Delete(ctx context.Context, id, userID uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.GeneratedImage{}))
}

var _ domain.GeneratedImageRepository = (*GeneratedImageGormRepository)(nil)
