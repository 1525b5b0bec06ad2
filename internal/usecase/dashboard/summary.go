package dashboard

import (
	"context"
	"strconv"
	"time"

	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/dto"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

// Window is one calendar day, month or year. Fields finer than Period are
// ignored.
type Window struct {
	Period domainSession.Period
	Day    int
	Month  int
	Year   int
}

// ParseWindow reads the dia/mes/ano query values. Missing values default to
// now, which the caller passes already in the deployment timezone.
func ParseWindow(period domainSession.Period, dia, mes, ano string, now time.Time) (Window, error) {
	var errs validators.Errors
	w := Window{
		Period: period,
		Day:    now.Day(),
		Month:  int(now.Month()),
		Year:   now.Year(),
	}

	parse := func(field, raw string, min, max int, dst *int) {
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < min || n > max {
			errs.Add(field, "valor inválido")
			return
		}
		*dst = n
	}

	parse("ano", ano, 1970, 9999, &w.Year)
	if period != domainSession.PeriodYear {
		parse("mes", mes, 1, 12, &w.Month)
	}
	if period == domainSession.PeriodDay {
		parse("dia", dia, 1, 31, &w.Day)
		if len(errs) == 0 {
			d := time.Date(w.Year, time.Month(w.Month), w.Day, 0, 0, 0, 0, time.UTC)
			if d.Day() != w.Day {
				errs.Add("dia", "data inexistente")
			}
		}
	}

	return w, errs.Err()
}

type Summary struct {
	sessions domainSession.Repository
	timezone string
}

func NewSummary(sessions domainSession.Repository, timezone string) *Summary {
	return &Summary{sessions: sessions, timezone: timezone}
}

// Execute totals the caller's non-canceled sessions in w, either counted or
// summed by valor_sessao.
func (uc *Summary) Execute(
	ctx context.Context,
	userID uint,
	metric domainSession.Metric,
	w Window,
) (dto.DashboardSummary, error) {

	rows, err := uc.sessions.Aggregate(ctx, domainSession.AggregateQuery{
		UserID:   userID,
		Metric:   metric,
		Period:   w.Period,
		Day:      w.Day,
		Month:    w.Month,
		Year:     w.Year,
		Timezone: uc.timezone,
	})
	if err != nil {
		return dto.DashboardSummary{}, err
	}

	var out dto.DashboardSummary
	for _, r := range rows {
		switch domainSession.Status(r.Status) {
		case domainSession.StatusRealized:
			out.Realizados += r.Total
		case domainSession.StatusPending:
			out.Pendentes += r.Total
		}
	}
	return out, nil
}
