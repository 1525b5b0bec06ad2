package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	ucSession "github.com/BruksfildServices01/ink-agenda/internal/usecase/session"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

type SessionHandler struct {
	create       *ucSession.CreateSession
	get          *ucSession.GetSession
	update       *ucSession.UpdateSession
	changeStatus *ucSession.ChangeSessionStatus
	delete       *ucSession.DeleteSession
	list         *ucSession.ListSessions
	loc          *time.Location
}

func NewSessionHandler(
	create *ucSession.CreateSession,
	get *ucSession.GetSession,
	update *ucSession.UpdateSession,
	changeStatus *ucSession.ChangeSessionStatus,
	delete *ucSession.DeleteSession,
	list *ucSession.ListSessions,
	loc *time.Location,
) *SessionHandler {
	return &SessionHandler{
		create:       create,
		get:          get,
		update:       update,
		changeStatus: changeStatus,
		delete:       delete,
		list:         list,
		loc:          loc,
	}
}

// statusAliases accepts both the enum values and the route words.
var statusAliases = map[string]domainSession.Status{
	"pending":    domainSession.StatusPending,
	"pendentes":  domainSession.StatusPending,
	"realized":   domainSession.StatusRealized,
	"realizadas": domainSession.StatusRealized,
	"canceled":   domainSession.StatusCanceled,
	"canceladas": domainSession.StatusCanceled,
}

// ======================================================
// CREATE
// ======================================================

func (h *SessionHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req validators.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	in, err := req.Validate(h.loc)
	if err != nil {
		invalid(c, err)
		return
	}

	s, err := h.create.Execute(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "failed_to_create_session", "Erro ao criar sessão.")
		return
	}

	httpresp.Created(c, s)
}

// ======================================================
// GET / UPDATE / DELETE
// ======================================================

func (h *SessionHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	s, err := h.get.Execute(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed_to_get_session", "Erro ao buscar sessão.")
		return
	}

	httpresp.OK(c, s)
}

func (h *SessionHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req validators.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	patch, err := req.Validate(h.loc)
	if err != nil {
		invalid(c, err)
		return
	}

	s, err := h.update.Execute(c.Request.Context(), userID, id, patch)
	if err != nil {
		respondError(c, err, "failed_to_update_session", "Erro ao atualizar sessão.")
		return
	}

	httpresp.OK(c, s)
}

// ChangeStatus handles PATCH /sessions/realizar/:id {realizado}.
func (h *SessionHandler) ChangeStatus(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req validators.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		invalid(c, err)
		return
	}

	s, err := h.changeStatus.Execute(c.Request.Context(), userID, id, *req.Realizado)
	if err != nil {
		respondError(c, err, "failed_to_change_status", "Erro ao alterar status da sessão.")
		return
	}

	httpresp.OK(c, s)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "failed_to_delete_session", "Erro ao remover sessão.")
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// LIST
// ======================================================

// List handles GET /sessions with optional ?cliente, ?status and ?data.
func (h *SessionHandler) List(c *gin.Context) {
	var q ucSession.ListQuery

	if raw := c.Query("cliente"); raw != "" {
		id, ok := parseID(c, raw)
		if !ok {
			return
		}
		q.ClientID = &id
	}

	if raw := c.Query("status"); raw != "" {
		st, ok := statusAliases[raw]
		if !ok {
			httperr.BadRequest(c, "invalid_status", "Status inválido. Use pending, realized ou canceled.")
			return
		}
		q.Status = &st
	}

	h.respondList(c, q)
}

// ListByStatus serves /sessions/{pendentes,realizadas,canceladas}.
func (h *SessionHandler) ListByStatus(status domainSession.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respondList(c, ucSession.ListQuery{Status: &status})
	}
}

// ListByClient serves /sessions/cliente/:clienteId, optionally with a status.
func (h *SessionHandler) ListByClient(status *domainSession.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := idParam(c, "clienteId")
		if !ok {
			return
		}
		h.respondList(c, ucSession.ListQuery{ClientID: &clientID, Status: status})
	}
}

func (h *SessionHandler) respondList(c *gin.Context, q ucSession.ListQuery) {
	userID := middleware.UserID(c)

	day, ok := dayParam(c, h.loc)
	if !ok {
		return
	}
	q.Day = day

	sessions, err := h.list.Execute(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err, "failed_to_list_sessions", "Erro ao listar sessões.")
		return
	}

	httpresp.Array(c, sessions)
}
