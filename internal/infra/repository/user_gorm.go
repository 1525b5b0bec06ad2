package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Omit("Styles").Create(u).Error
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Styles", func(db *gorm.DB) *gorm.DB { return db.Order("styles.nome ASC") }).
		First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("auth_id = ?", authID).
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserGormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) SetAuthID(ctx context.Context, id uint, authID string) error {
	return affected(r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("auth_id", authID))
}

func (r *UserGormRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return affected(r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("senha", hash))
}

func (r *UserGormRepository) UpdatePhoto(ctx context.Context, id uint, key string) error {
	return affected(r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("foto", key))
}

func (r *UserGormRepository) UpdateProfile(
	ctx context.Context,
	id uint,
	columns map[string]any,
	styles []models.Style,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := models.User{ID: id}

		if len(columns) > 0 {
			if err := affected(tx.Model(&u).Updates(columns)); err != nil {
				return err
			}
		}

		if styles == nil {
			return nil
		}

		assoc := tx.Model(&u).Association("Styles")
		if len(styles) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(styles)
	})
}

func (r *UserGormRepository) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&models.User{}, id))
}

var _ domain.Repository = (*UserGormRepository)(nil)

// ======================================================
// STYLES
// ======================================================

type StyleGormRepository struct {
	db *gorm.DB
}

func NewStyleGormRepository(db *gorm.DB) *StyleGormRepository {
	return &StyleGormRepository{db: db}
}

func (r *StyleGormRepository) List(ctx context.Context) ([]models.Style, error) {
	var out []models.Style
	if err := r.db.WithContext(ctx).Order("nome ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StyleGormRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Style, error) {
	var out []models.Style
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.StyleRepository = (*StyleGormRepository)(nil)
