package session

import (
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusPending  Status = models.SessionStatusPending
	StatusRealized Status = models.SessionStatusRealized
	StatusCanceled Status = models.SessionStatusCanceled
)

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// ===============================
// Transitions
// ===============================

// transitions lists, per state, the states a session may move to.
// Every move is currently allowed, re-opening included.
var transitions = map[Status][]Status{
	StatusPending:  {StatusPending, StatusRealized, StatusCanceled},
	StatusRealized: {StatusRealized, StatusPending, StatusCanceled},
	StatusCanceled: {StatusCanceled, StatusPending, StatusRealized},
}

func CanTransition(from, to Status) error {
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_status_transition")
}

func InitialStatus() Status {
	return StatusPending
}

// Resolve derives the next status from the legacy realizado/cancelado flags.
// Flags not sent keep the value implied by the current status; canceled wins
// over realized.
func Resolve(current Status, realizado, cancelado *bool) Status {
	r := current == StatusRealized
	c := current == StatusCanceled

	if realizado != nil {
		r = *realizado
	}
	if cancelado != nil {
		c = *cancelado
	}

	switch {
	case c:
		return StatusCanceled
	case r:
		return StatusRealized
	default:
		return StatusPending
	}
}

// FromRealizado maps the status toggle endpoint.
func FromRealizado(realizado bool) Status {
	if realizado {
		return StatusRealized
	}
	return StatusPending
}
