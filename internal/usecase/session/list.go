package session

import (
	"context"
	"time"

	domainClient "github.com/BruksfildServices01/ink-agenda/internal/domain/client"
	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	"github.com/BruksfildServices01/ink-agenda/internal/timezone"
)

// ListQuery combines the optional filters. Nil Status lists every state.
type ListQuery struct {
	ClientID *uint
	Status   *domainSession.Status
	Day      *time.Time
}

type ListSessions struct {
	sessions domainSession.Repository
	clients  domainClient.Repository
	loc      *time.Location
}

func NewListSessions(
	sessions domainSession.Repository,
	clients domainClient.Repository,
	loc *time.Location,
) *ListSessions {
	return &ListSessions{sessions: sessions, clients: clients, loc: loc}
}

func (uc *ListSessions) Execute(ctx context.Context, userID uint, q ListQuery) ([]models.Session, error) {
	f := domainSession.Filter{
		UserID:   userID,
		ClientID: q.ClientID,
	}

	if q.ClientID != nil {
		if err := assertClientOwned(ctx, uc.clients, *q.ClientID, userID); err != nil {
			return nil, err
		}
	}

	if q.Status != nil {
		f.Statuses = []domainSession.Status{*q.Status}
		// history reads newest first
		f.Descending = *q.Status != domainSession.StatusPending
	}

	if q.Day != nil {
		start, end := timezone.DayBounds(*q.Day, uc.loc)
		f.From = &start
		f.To = &end
	}

	return uc.sessions.List(ctx, f)
}
