package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/timezone"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

// dayParam reads ?data=YYYY-MM-DD in loc. A missing value yields nil.
func dayParam(c *gin.Context, loc *time.Location) (*time.Time, bool) {
	raw := c.Query("data")
	if raw == "" {
		return nil, true
	}

	day, err := timezone.ParseDay(raw, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", validators.MsgDateFormat)
		return nil, false
	}
	return &day, true
}

// auditRange reads ?from and ?to as calendar days; to is inclusive.
func auditRange(c *gin.Context, loc *time.Location) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		d, err := timezone.ParseDay(raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", validators.MsgDateFormat)
			return nil, nil, false
		}
		from = &d
	}

	if raw := c.Query("to"); raw != "" {
		d, err := timezone.ParseDay(raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", validators.MsgDateFormat)
			return nil, nil, false
		}
		next := d.AddDate(0, 0, 1)
		to = &next
	}

	return from, to, true
}
