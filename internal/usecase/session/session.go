package session

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainClient "github.com/BruksfildServices01/ink-agenda/internal/domain/client"
	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

var (
	ErrSessionNotFound = httperr.ErrBusiness("session_not_found")
	ErrClientNotFound  = httperr.ErrBusiness("client_not_found")
)

func sessionNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

// assertClientOwned reports a client that belongs to someone else as missing.
func assertClientOwned(ctx context.Context, clients domainClient.Repository, clientID, userID uint) error {
	if _, err := clients.GetForUser(ctx, clientID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}

// ======================================================
// CREATE
// ======================================================

type CreateSession struct {
	sessions domainSession.Repository
	clients  domainClient.Repository
	audit    audit.Recorder
}

func NewCreateSession(
	sessions domainSession.Repository,
	clients domainClient.Repository,
	audit audit.Recorder,
) *CreateSession {
	return &CreateSession{sessions: sessions, clients: clients, audit: audit}
}

func (uc *CreateSession) Execute(
	ctx context.Context,
	userID uint,
	in validators.SessionInput,
) (*models.Session, error) {

	if err := assertClientOwned(ctx, uc.clients, in.ClienteID, userID); err != nil {
		return nil, err
	}

	s := &models.Session{
		ClienteID:       in.ClienteID,
		UsuarioID:       userID,
		DataAtendimento: in.DataAtendimento,
		ValorSessao:     in.ValorSessao,
		NumeroSessao:    in.NumeroSessao,
		Descricao:       in.Descricao,
		Status:          string(domainSession.InitialStatus()),
	}

	if err := uc.sessions.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "session_created",
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: map[string]any{
			"cliente_id":       s.ClienteID,
			"data_atendimento": s.DataAtendimento,
		},
	})

	return s, nil
}

// ======================================================
// GET
// ======================================================

type GetSession struct {
	sessions domainSession.Repository
}

func NewGetSession(sessions domainSession.Repository) *GetSession {
	return &GetSession{sessions: sessions}
}

func (uc *GetSession) Execute(ctx context.Context, userID, id uint) (*models.Session, error) {
	s, err := uc.sessions.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, sessionNotFound(err)
	}
	return s, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateSession struct {
	sessions domainSession.Repository
	clients  domainClient.Repository
	audit    audit.Recorder
}

func NewUpdateSession(
	sessions domainSession.Repository,
	clients domainClient.Repository,
	audit audit.Recorder,
) *UpdateSession {
	return &UpdateSession{sessions: sessions, clients: clients, audit: audit}
}

func (uc *UpdateSession) Execute(
	ctx context.Context,
	userID uint,
	id uint,
	p validators.SessionPatch,
) (*models.Session, error) {

	s, err := uc.sessions.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, sessionNotFound(err)
	}

	if p.ClienteID != nil && *p.ClienteID != s.ClienteID {
		if err := assertClientOwned(ctx, uc.clients, *p.ClienteID, userID); err != nil {
			return nil, err
		}
		s.ClienteID = *p.ClienteID
		s.Cliente = nil
	}
	if p.DataAtendimento != nil {
		s.DataAtendimento = *p.DataAtendimento
	}
	if p.ValorSessao != nil {
		s.ValorSessao = *p.ValorSessao
	}
	if p.NumeroSessao != nil {
		s.NumeroSessao = *p.NumeroSessao
	}
	if p.Descricao.Set {
		s.Descricao = p.Descricao.Value
	}
	if p.Motivo.Set {
		s.Motivo = p.Motivo.Ptr()
	}

	from := domainSession.Status(s.Status)
	to := domainSession.Resolve(from, p.Realizado, p.Cancelado)
	if err := domainSession.CanTransition(from, to); err != nil {
		return nil, err
	}
	s.Status = string(to)

	if err := uc.sessions.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "session_updated",
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   to,
		},
	})

	return s, nil
}

// ======================================================
// CHANGE STATUS
// ======================================================

type ChangeSessionStatus struct {
	sessions domainSession.Repository
	audit    audit.Recorder
}

func NewChangeSessionStatus(sessions domainSession.Repository, audit audit.Recorder) *ChangeSessionStatus {
	return &ChangeSessionStatus{sessions: sessions, audit: audit}
}

func (uc *ChangeSessionStatus) Execute(
	ctx context.Context,
	userID uint,
	id uint,
	realizado bool,
) (*models.Session, error) {

	s, err := uc.sessions.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, sessionNotFound(err)
	}

	from := domainSession.Status(s.Status)
	to := domainSession.FromRealizado(realizado)
	if err := domainSession.CanTransition(from, to); err != nil {
		return nil, err
	}

	s.Status = string(to)
	if err := uc.sessions.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "session_status_changed",
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   to,
		},
	})

	return s, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteSession struct {
	sessions domainSession.Repository
	audit    audit.Recorder
}

func NewDeleteSession(sessions domainSession.Repository, audit audit.Recorder) *DeleteSession {
	return &DeleteSession{sessions: sessions, audit: audit}
}

func (uc *DeleteSession) Execute(ctx context.Context, userID, id uint) error {
	if err := uc.sessions.Delete(ctx, id, userID); err != nil {
		return sessionNotFound(err)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "session_deleted",
		Entity:   "session",
		EntityID: &id,
	})
	return nil
}
