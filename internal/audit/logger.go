package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder persists audit events. Failures never reach the caller.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ctx context.Context, ev Event) {
	var meta *string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			s := string(b)
			meta = &s
		}
	}

	row := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}

	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		logrus.WithError(err).
			WithFields(logrus.Fields{"action": ev.Action, "entity": ev.Entity}).
			Warn("audit write failed")
	}
}

// Query filters a user's own trail.
type Query struct {
	UserID uint
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	tx := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("user_id = ?", q.UserID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.AuditLog
	if err := tx.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(context.Context, Event) {}

// Ptr is a helper for the optional id fields.
func Ptr(v uint) *uint {
	return &v
}
