package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSessionJSON_ExposesStatusFlags(t *testing.T) {
	cases := []struct {
		status    string
		realizado bool
		cancelado bool
	}{
		{SessionStatusPending, false, false},
		{SessionStatusRealized, true, false},
		{SessionStatusCanceled, false, true},
	}

	for _, tc := range cases {
		b, err := json.Marshal(Session{ID: 7, Status: tc.status, ValorSessao: 150})
		require.NoError(t, err)

		doc := string(b)
		assert.Equal(t, int64(7), gjson.Get(doc, "sessao_id").Int())
		assert.Equal(t, tc.status, gjson.Get(doc, "status").String())
		assert.Equal(t, tc.realizado, gjson.Get(doc, "realizado").Bool(), tc.status)
		assert.Equal(t, tc.cancelado, gjson.Get(doc, "cancelado").Bool(), tc.status)
		assert.False(t, gjson.Get(doc, "cliente").Exists())
	}
}

func TestUserJSON_HidesSecrets(t *testing.T) {
	authID := "9b1c"
	b, err := json.Marshal(User{ID: 1, Email: "a@b.com", Senha: "hash", AuthID: &authID, Foto: "imagens/perfil/x.webp"})
	require.NoError(t, err)

	doc := string(b)
	assert.False(t, gjson.Get(doc, "senha").Exists())
	assert.NotContains(t, doc, "hash")
	assert.NotContains(t, doc, authID)
	assert.Equal(t, "", gjson.Get(doc, "foto").String())
}
