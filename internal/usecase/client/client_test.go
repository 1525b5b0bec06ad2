package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/memory"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

func TestClientLifecycle_OwnershipIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Clients()

	created, err := NewCreateClient(repo, audit.Nop{}).Execute(ctx, 1, validators.CreateClientRequest{
		Nome:     "Cliente Teste",
		Telefone: "11999998888",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	_, err = NewGetClient(repo).Execute(ctx, 2, created.ID)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))

	_, err = NewUpdateClient(repo, audit.Nop{}).Execute(ctx, 2, created.ID, validators.UpdateClientRequest{
		Nome: validators.Some("Outro Nome"),
	})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))

	err = NewDeleteClient(repo, audit.Nop{}).Execute(ctx, 2, created.ID)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))

	got, err := NewGetClient(repo).Execute(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cliente Teste", got.Nome)
}

func TestUpdateClient_PartialAndNull(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Clients()

	c, err := NewCreateClient(repo, audit.Nop{}).Execute(ctx, 1, validators.CreateClientRequest{
		Nome:      "Maria Souza",
		Telefone:  "11988887777",
		Descricao: "fechamento de braço",
	})
	require.NoError(t, err)

	updated, err := NewUpdateClient(repo, audit.Nop{}).Execute(ctx, 1, c.ID, validators.UpdateClientRequest{
		Telefone: validators.Optional[string]{Set: true, Null: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Souza", updated.Nome)
	assert.Empty(t, updated.Telefone)
	assert.Equal(t, "fechamento de braço", updated.Descricao)
}

func TestUpdateClient_EmptyBody(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Clients()

	_, err := NewUpdateClient(repo, audit.Nop{}).Execute(ctx, 1, 99, validators.UpdateClientRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
	assert.True(t, httperr.IsBusiness(err, "empty_update"))
}

func TestListClients_Modes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Clients()
	create := NewCreateClient(repo, audit.Nop{})

	for _, req := range []validators.CreateClientRequest{
		{Nome: "Bruno Lima", Telefone: "111"},
		{Nome: "Ana Paula", Telefone: "222"},
	} {
		_, err := create.Execute(ctx, 1, req)
		require.NoError(t, err)
	}
	_, err := create.Execute(ctx, 2, validators.CreateClientRequest{Nome: "Carla Dias", Telefone: "333"})
	require.NoError(t, err)

	list := NewListClients(repo)

	all, err := list.Execute(ctx, 1, ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana Paula", all[0].Nome)

	byName, err := list.Execute(ctx, 1, ListQuery{Nome: "Bruno Lima", Telefone: "333"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "111", byName[0].Telefone)

	// phone lookup is not owner-scoped
	byPhone, err := list.Execute(ctx, 1, ListQuery{Telefone: "333"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, uint(2), byPhone[0].UserID)

	_, err = list.Execute(ctx, 1, ListQuery{Telefone: "999"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}
