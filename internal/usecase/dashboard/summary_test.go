package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/dto"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/memory"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
)

const tz = "America/Sao_Paulo"

func seed(t *testing.T, store *memory.Store, at time.Time, valor float64, status string) {
	t.Helper()
	require.NoError(t, store.Sessions().Create(context.Background(), &models.Session{
		ClienteID:       1,
		UsuarioID:       1,
		DataAtendimento: at,
		ValorSessao:     valor,
		NumeroSessao:    1,
		Status:          status,
	}))
}

func TestSummary_DayValue(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().In(mustLoad(t))

	seed(t, store, now, 100, models.SessionStatusRealized)
	seed(t, store, now, 50, models.SessionStatusRealized)
	seed(t, store, now, 999, models.SessionStatusCanceled)
	seed(t, store, now.AddDate(0, 0, -1), 70, models.SessionStatusPending)

	w, err := ParseWindow(domainSession.PeriodDay, "", "", "", now)
	require.NoError(t, err)

	got, err := NewSummary(store.Sessions(), tz).Execute(context.Background(), 1, domainSession.MetricValue, w)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardSummary{Realizados: 150, Pendentes: 0}, got)
}

func TestSummary_MonthCount(t *testing.T) {
	store := memory.NewStore()
	loc := mustLoad(t)

	seed(t, store, time.Date(2025, 3, 1, 9, 0, 0, 0, loc), 10, models.SessionStatusPending)
	seed(t, store, time.Date(2025, 3, 31, 22, 0, 0, 0, loc), 10, models.SessionStatusPending)
	seed(t, store, time.Date(2025, 3, 15, 9, 0, 0, 0, loc), 10, models.SessionStatusRealized)
	seed(t, store, time.Date(2025, 4, 1, 0, 0, 0, 0, loc), 10, models.SessionStatusRealized)

	w, err := ParseWindow(domainSession.PeriodMonth, "", "3", "2025", time.Now())
	require.NoError(t, err)

	got, err := NewSummary(store.Sessions(), tz).Execute(context.Background(), 1, domainSession.MetricCount, w)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardSummary{Realizados: 1, Pendentes: 2}, got)
}

func TestParseWindow_Invalid(t *testing.T) {
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	_, err := ParseWindow(domainSession.PeriodDay, "30", "", "", now)
	assert.Error(t, err)

	_, err = ParseWindow(domainSession.PeriodMonth, "", "13", "", now)
	assert.Error(t, err)

	_, err = ParseWindow(domainSession.PeriodYear, "", "", "abc", now)
	assert.Error(t, err)

	// finer fields are ignored for coarser periods
	w, err := ParseWindow(domainSession.PeriodYear, "99", "99", "2024", now)
	require.NoError(t, err)
	assert.Equal(t, 2024, w.Year)
}

func mustLoad(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	require.NoError(t, err)
	return loc
}
