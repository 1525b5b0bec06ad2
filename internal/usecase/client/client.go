package client

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainClient "github.com/BruksfildServices01/ink-agenda/internal/domain/client"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

var (
	ErrClientNotFound = httperr.ErrBusiness("client_not_found")
	ErrEmptyUpdate    = httperr.ErrBusiness("empty_update")
)

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

// ======================================================
// CREATE
// ======================================================

type CreateClient struct {
	repo  domainClient.Repository
	audit audit.Recorder
}

func NewCreateClient(repo domainClient.Repository, audit audit.Recorder) *CreateClient {
	return &CreateClient{repo: repo, audit: audit}
}

func (uc *CreateClient) Execute(
	ctx context.Context,
	userID uint,
	req validators.CreateClientRequest,
) (*models.Client, error) {

	c := &models.Client{
		UserID:    userID,
		Nome:      req.Nome,
		Telefone:  req.Telefone,
		Descricao: req.Descricao,
		Endereco:  req.Endereco,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &c.ID,
	})

	return c, nil
}

// ======================================================
// LIST / SEARCH
// ======================================================

type ListQuery struct {
	Nome     string
	Telefone string
}

type ListClients struct {
	repo domainClient.Repository
}

func NewListClients(repo domainClient.Repository) *ListClients {
	return &ListClients{repo: repo}
}

// Execute picks one mode: name search, phone lookup or the full list.
// The phone lookup spans every account.
func (uc *ListClients) Execute(ctx context.Context, userID uint, q ListQuery) ([]models.Client, error) {
	switch {
	case q.Nome != "":
		return uc.repo.FindByName(ctx, userID, q.Nome)

	case q.Telefone != "":
		out, err := uc.repo.FindByPhone(ctx, q.Telefone)
		if err != nil {
			return nil, err
		}
		if len(out) == 0 {
			return nil, ErrClientNotFound
		}
		return out, nil

	default:
		return uc.repo.ListByUser(ctx, userID)
	}
}

// ======================================================
// GET
// ======================================================

type GetClient struct {
	repo domainClient.Repository
}

func NewGetClient(repo domainClient.Repository) *GetClient {
	return &GetClient{repo: repo}
}

func (uc *GetClient) Execute(ctx context.Context, userID, id uint) (*models.Client, error) {
	c, err := uc.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateClient struct {
	repo  domainClient.Repository
	audit audit.Recorder
}

func NewUpdateClient(repo domainClient.Repository, audit audit.Recorder) *UpdateClient {
	return &UpdateClient{repo: repo, audit: audit}
}

func (uc *UpdateClient) Execute(
	ctx context.Context,
	userID uint,
	id uint,
	req validators.UpdateClientRequest,
) (*models.Client, error) {

	if req.Empty() {
		return nil, ErrEmptyUpdate
	}

	c, err := uc.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, notFound(err)
	}

	if req.Nome.Present() {
		c.Nome = req.Nome.Value
	}
	if req.Telefone.Set {
		c.Telefone = req.Telefone.Value
	}
	if req.Descricao.Set {
		c.Descricao = req.Descricao.Value
	}
	if req.Endereco.Set {
		c.Endereco = req.Endereco.Value
	}

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &c.ID,
	})

	return c, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteClient struct {
	repo  domainClient.Repository
	audit audit.Recorder
}

func NewDeleteClient(repo domainClient.Repository, audit audit.Recorder) *DeleteClient {
	return &DeleteClient{repo: repo, audit: audit}
}

func (uc *DeleteClient) Execute(ctx context.Context, userID, id uint) error {
	if err := uc.repo.Delete(ctx, id, userID); err != nil {
		return notFound(err)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &userID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &id,
	})
	return nil
}
