package session

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

// Filter scopes a listing to one owner. Zero-valued fields do not filter.
type Filter struct {
	UserID     uint
	ClientID   *uint
	Statuses   []Status
	From       *time.Time
	To         *time.Time
	Descending bool
}

type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

type Metric string

const (
	MetricCount Metric = "count"
	MetricValue Metric = "value"
)

// AggregateQuery groups an owner's non-canceled sessions by status inside a
// calendar window evaluated in Timezone.
type AggregateQuery struct {
	UserID   uint
	Metric   Metric
	Period   Period
	Day      int
	Month    int
	Year     int
	Timezone string
}

type StatusTotal struct {
	Status string
	Total  float64
}

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	GetForUser(ctx context.Context, id, userID uint) (*models.Session, error)
	Update(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id, userID uint) error
	List(ctx context.Context, f Filter) ([]models.Session, error)
	Aggregate(ctx context.Context, q AggregateQuery) ([]StatusTotal, error)
}
