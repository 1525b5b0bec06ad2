package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (r *SessionGormRepository) Create(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionGormRepository) GetForUser(ctx context.Context, id, userID uint) (*models.Session, error) {
	var s models.Session
	if err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, userID).
		First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SessionGormRepository) Update(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).
		Model(s).
		Select(
			"cliente_id",
			"data_atendimento",
			"valor_sessao",
			"numero_sessao",
			"descricao",
			"status",
			"motivo",
		).
		Updates(s).Error
}

func (r *SessionGormRepository) Delete(ctx context.Context, id, userID uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, userID).
		Delete(&models.Session{}))
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *SessionGormRepository) List(ctx context.Context, f domain.Filter) ([]models.Session, error) {
	q := r.db.WithContext(ctx).
		Preload("Cliente").
		Where("usuario_id = ?", f.UserID)

	if f.ClientID != nil {
		q = q.Where("cliente_id = ?", *f.ClientID)
	}

	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}

	if f.From != nil {
		q = q.Where("data_atendimento >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("data_atendimento <= ?", *f.To)
	}

	order := "data_atendimento ASC"
	if f.Descending {
		order = "data_atendimento DESC"
	}

	var out []models.Session
	if err := q.Order(order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Dashboard
// --------------------------------------------------

func (r *SessionGormRepository) Aggregate(ctx context.Context, q domain.AggregateQuery) ([]domain.StatusTotal, error) {
	expr := "COUNT(*)"
	if q.Metric == domain.MetricValue {
		expr = "COALESCE(SUM(valor_sessao), 0)"
	}

	tx := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Select("status, "+expr+" AS total").
		Where("usuario_id = ? AND status <> ?", q.UserID, string(domain.StatusCanceled)).
		Where("EXTRACT(YEAR FROM data_atendimento AT TIME ZONE ?) = ?", q.Timezone, q.Year)

	if q.Period == domain.PeriodMonth || q.Period == domain.PeriodDay {
		tx = tx.Where("EXTRACT(MONTH FROM data_atendimento AT TIME ZONE ?) = ?", q.Timezone, q.Month)
	}
	if q.Period == domain.PeriodDay {
		tx = tx.Where("EXTRACT(DAY FROM data_atendimento AT TIME ZONE ?) = ?", q.Timezone, q.Day)
	}

	var rows []domain.StatusTotal
	if err := tx.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ domain.Repository = (*SessionGormRepository)(nil)
