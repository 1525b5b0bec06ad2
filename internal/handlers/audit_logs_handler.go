package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	loc  *time.Location
}

func NewAuditLogsHandler(logs *audit.Logger, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

// List returns the caller's own trail, newest first.
// Filters: action, entity, from, to (YYYY-MM-DD), page, limit (max 200).
func (h *AuditLogsHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	from, to, ok := auditRange(c, h.loc)
	if !ok {
		return
	}

	logs, total, err := h.logs.List(c.Request.Context(), audit.Query{
		UserID: userID,
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
