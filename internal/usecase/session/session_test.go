package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/memory"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

var brt = time.FixedZone("BRT", -3*60*60)

type fixture struct {
	store    *memory.Store
	clientID uint
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	c := &models.Client{UserID: 1, Nome: "Cliente Teste"}
	require.NoError(t, store.Clients().Create(context.Background(), c))
	return fixture{store: store, clientID: c.ID}
}

func (f fixture) create(t *testing.T, userID uint, at time.Time, valor float64) *models.Session {
	t.Helper()
	s, err := NewCreateSession(f.store.Sessions(), f.store.Clients(), audit.Nop{}).Execute(
		context.Background(), userID, validators.SessionInput{
			ClienteID:       f.clientID,
			DataAtendimento: at,
			ValorSessao:     valor,
			NumeroSessao:    1,
		})
	require.NoError(t, err)
	return s
}

func statusPtr(s domainSession.Status) *domainSession.Status { return &s }

func TestCreateSession_StartsPending(t *testing.T) {
	f := newFixture(t)
	s := f.create(t, 1, time.Date(2025, 10, 25, 10, 0, 0, 0, brt), 200)

	assert.Equal(t, models.SessionStatusPending, s.Status)
	assert.Equal(t, uint(1), s.UsuarioID)
}

func TestCreateSession_ForeignClient(t *testing.T) {
	f := newFixture(t)

	_, err := NewCreateSession(f.store.Sessions(), f.store.Clients(), audit.Nop{}).Execute(
		context.Background(), 2, validators.SessionInput{ClienteID: f.clientID, ValorSessao: 1, NumeroSessao: 1})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestChangeStatus_MovesBetweenLists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.create(t, 1, time.Date(2025, 10, 25, 10, 0, 0, 0, brt), 200)

	list := NewListSessions(f.store.Sessions(), f.store.Clients(), brt)
	change := NewChangeSessionStatus(f.store.Sessions(), audit.Nop{})

	_, err := change.Execute(ctx, 1, s.ID, true)
	require.NoError(t, err)

	realized, err := list.Execute(ctx, 1, ListQuery{Status: statusPtr(domainSession.StatusRealized)})
	require.NoError(t, err)
	require.Len(t, realized, 1)
	assert.Equal(t, s.ID, realized[0].ID)

	pending, err := list.Execute(ctx, 1, ListQuery{Status: statusPtr(domainSession.StatusPending)})
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = change.Execute(ctx, 2, s.ID, true)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateSession_FlagsAndMotivo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.create(t, 1, time.Date(2025, 10, 25, 10, 0, 0, 0, brt), 200)
	update := NewUpdateSession(f.store.Sessions(), f.store.Clients(), audit.Nop{})

	yes := true
	got, err := update.Execute(ctx, 1, s.ID, validators.SessionPatch{
		Realizado: &yes,
		Cancelado: &yes,
		Motivo:    validators.Some("cliente desmarcou"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCanceled, got.Status)
	require.NotNil(t, got.Motivo)
	assert.Equal(t, "cliente desmarcou", *got.Motivo)

	no := false
	got, err = update.Execute(ctx, 1, s.ID, validators.SessionPatch{
		Cancelado: &no,
		Motivo:    validators.Optional[string]{Set: true, Null: true},
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusPending, got.Status)
	assert.Nil(t, got.Motivo)
	assert.Equal(t, 200.0, got.ValorSessao)
}

func TestUpdateSession_ForeignClientRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.create(t, 1, time.Now(), 10)

	other := &models.Client{UserID: 2, Nome: "Outro Cliente"}
	require.NoError(t, f.store.Clients().Create(ctx, other))

	_, err := NewUpdateSession(f.store.Sessions(), f.store.Clients(), audit.Nop{}).Execute(
		ctx, 1, s.ID, validators.SessionPatch{ClienteID: &other.ID})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestListSessions_DayBoundsAndOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	late := f.create(t, 1, time.Date(2025, 11, 10, 23, 30, 0, 0, brt), 10)
	early := f.create(t, 1, time.Date(2025, 11, 10, 0, 0, 0, 0, brt), 10)
	f.create(t, 1, time.Date(2025, 11, 11, 0, 0, 0, 0, brt), 10)

	day := time.Date(2025, 11, 10, 12, 0, 0, 0, brt)
	got, err := NewListSessions(f.store.Sessions(), f.store.Clients(), brt).Execute(ctx, 1, ListQuery{Day: &day})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)
}

func TestListSessions_ClientScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.create(t, 1, time.Now(), 10)

	list := NewListSessions(f.store.Sessions(), f.store.Clients(), brt)

	got, err := list.Execute(ctx, 1, ListQuery{ClientID: &f.clientID})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = list.Execute(ctx, 2, ListQuery{ClientID: &f.clientID})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.create(t, 1, time.Now(), 10)
	del := NewDeleteSession(f.store.Sessions(), audit.Nop{})

	assert.ErrorIs(t, del.Execute(ctx, 2, s.ID), ErrSessionNotFound)
	require.NoError(t, del.Execute(ctx, 1, s.ID))

	_, err := NewGetSession(f.store.Sessions()).Execute(ctx, 1, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
