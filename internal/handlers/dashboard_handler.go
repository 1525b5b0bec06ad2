package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	"github.com/BruksfildServices01/ink-agenda/internal/usecase/dashboard"
)

type DashboardHandler struct {
	summary *dashboard.Summary
	loc     *time.Location
}

func NewDashboardHandler(summary *dashboard.Summary, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{summary: summary, loc: loc}
}

// Sessions serves one period/metric pair, e.g. /dashboard/sessions/value/day.
// Query params: dia, mes, ano (default today).
func (h *DashboardHandler) Sessions(metric domainSession.Metric, period domainSession.Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		w, err := dashboard.ParseWindow(
			period,
			c.Query("dia"),
			c.Query("mes"),
			c.Query("ano"),
			time.Now().In(h.loc),
		)
		if err != nil {
			invalid(c, err)
			return
		}

		out, err := h.summary.Execute(c.Request.Context(), userID, metric, w)
		if err != nil {
			respondError(c, err, "failed_to_load_dashboard", "Erro ao carregar dashboard.")
			return
		}

		httpresp.OK(c, out)
	}
}
