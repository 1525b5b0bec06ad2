package perfil

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/memory"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

const bucket = "https://cdn.test"

func seedUser(t *testing.T, store *memory.Store, authID string) *models.User {
	t.Helper()
	u := &models.User{Nome: "Ana", Sobrenome: "Souza", CPF: "12345678901", Email: "ana@studio.dev"}
	if authID != "" {
		u.AuthID = &authID
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestUpdatePerfil_ReplacesStyles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	u := seedUser(t, store, "")
	fine := store.Styles().Add("Fineline")
	old := store.Styles().Add("Old School")

	uc := NewUpdatePerfil(store.Users(), store.Styles(), memory.NewObjectStore(bucket), audit.Nop{})

	got, err := uc.Execute(ctx, u.ID, validators.PerfilPatch{
		Columns:       map[string]any{"bio": "Tatuadora desde 2015"},
		StyleIDs:      []uint{fine.ID, old.ID},
		ReplaceStyles: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tatuadora desde 2015", got.Bio)
	assert.Len(t, got.Styles, 2)

	got, err = uc.Execute(ctx, u.ID, validators.PerfilPatch{StyleIDs: []uint{old.ID}, ReplaceStyles: true})
	require.NoError(t, err)
	require.Len(t, got.Styles, 1)
	assert.Equal(t, "Old School", got.Styles[0].Nome)

	_, err = uc.Execute(ctx, u.ID, validators.PerfilPatch{StyleIDs: []uint{999}, ReplaceStyles: true})
	assert.ErrorIs(t, err, ErrStyleNotFound)

	_, err = uc.Execute(ctx, u.ID, validators.PerfilPatch{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestDeletePerfil_RemovesRemoteIdentity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	idp := memory.NewIdentityProvider()

	authID, err := idp.CreateIdentity(ctx, "ana@studio.dev", "segredo123")
	require.NoError(t, err)
	u := seedUser(t, store, authID)

	require.NoError(t, NewDeletePerfil(store.Users(), idp, memory.NewObjectStore(bucket), audit.Nop{}).Execute(ctx, u.ID))
	assert.Empty(t, idp.Accounts)

	_, err = NewGetPerfil(store.Users(), memory.NewObjectStore(bucket)).Execute(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeletePerfil_RemoteFailureIsReported(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	idp := memory.NewIdentityProvider()
	idp.DeleteErr = errors.New("admin api down")

	u := seedUser(t, store, "auth-x")

	err := NewDeletePerfil(store.Users(), idp, memory.NewObjectStore(bucket), audit.Nop{}).Execute(ctx, u.ID)
	assert.ErrorIs(t, err, ErrIdentityDeleteFailed)

	// the local delete is not rolled back
	_, err = store.Users().GetByID(ctx, u.ID)
	assert.Error(t, err)
}

func TestUploadProfilePhoto_ReplacesOldObject(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	objects := memory.NewObjectStore(bucket)
	u := seedUser(t, store, "")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	uc := NewUploadProfilePhoto(store.Users(), objects, audit.Nop{})

	uc.now = func() time.Time { return time.UnixMilli(1000) }
	first, err := uc.Execute(ctx, u.ID, "eu.png", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, bucket+"/imagens/perfil/1000-1-eu.webp", first)

	uc.now = func() time.Time { return time.UnixMilli(2000) }
	second, err := uc.Execute(ctx, u.ID, "eu.png", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"imagens/perfil/1000-1-eu.webp"}, objects.Deleted)
	assert.Equal(t, []string{"imagens/perfil/2000-1-eu.webp"}, objects.Keys())

	perfil, err := NewGetPerfil(store.Users(), objects).Execute(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, second, perfil.FotoURL)
}
