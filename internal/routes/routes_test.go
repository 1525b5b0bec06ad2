package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	"github.com/BruksfildServices01/ink-agenda/internal/auth"
	"github.com/BruksfildServices01/ink-agenda/internal/dbtest"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/memory"
	"github.com/BruksfildServices01/ink-agenda/internal/timezone"
)

const tz = "America/Sao_Paulo"

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	r        *gin.Engine
	store    *memory.Store
	identity *memory.IdentityProvider
}

func repos(store *memory.Store) Repositories {
	return Repositories{
		Users:    store.Users(),
		Styles:   store.Styles(),
		Clients:  store.Clients(),
		Sessions: store.Sessions(),
		Photos:   store.Photos(),
		Images:   store.GeneratedImages(),
	}
}

func baseDeps(store *memory.Store) Deps {
	return Deps{
		Repos:      repos(store),
		Audit:      audit.Nop{},
		Store:      memory.NewObjectStore("https://cdn.test"),
		Generator:  memory.Generator{},
		Timezone:   tz,
		Location:   timezone.Location(tz),
		BcryptCost: bcrypt.MinCost,
	}
}

func localHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	jwtm := auth.NewJWTManager("test-secret", time.Hour)

	d := baseDeps(store)
	d.Resolver = jwtm
	d.Tokens = jwtm
	d.ResetTokens = memory.NewResetTokens()
	d.Mailer = memory.NewMailer()

	r := gin.New()
	RegisterRoutes(r, d)
	return &harness{r: r, store: store}
}

func remoteHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	idp := memory.NewIdentityProvider()

	d := baseDeps(store)
	d.Identity = idp
	d.Resolver = auth.NewIdentityResolver(idp)

	r := gin.New()
	RegisterRoutes(r, d)
	return &harness{r: r, store: store, identity: idp}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.r.ServeHTTP(rec, req)
	return rec
}

// signUp registers and logs in, returning the bearer token.
func (h *harness) signUp(t *testing.T, email string) string {
	t.Helper()
	rec := h.do(http.MethodPost, "/api/user/register", "", gin.H{
		"nome":      "Ana",
		"sobrenome": "Souza",
		"cpf":       "123.456.789-01",
		"email":     email,
		"senha":     "segredo123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(http.MethodPost, "/api/user/login", "", gin.H{"email": email, "senha": "segredo123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token := gjson.Get(rec.Body.String(), "token").String()
	require.NotEmpty(t, token)
	return token
}

func (h *harness) newClient(t *testing.T, token string) int64 {
	t.Helper()
	rec := h.do(http.MethodPost, "/api/client", token, gin.H{"nome": "Bruno Lima", "telefone": "11999990000"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return gjson.Get(rec.Body.String(), "client_id").Int()
}

func TestAuth_RegisterLoginRoundTrip(t *testing.T) {
	h := localHarness(t)
	token := h.signUp(t, "ana@studio.dev")

	rec := h.do(http.MethodGet, "/api/perfil", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@studio.dev", gjson.Get(rec.Body.String(), "email").String())
	assert.Equal(t, "12345678901", gjson.Get(rec.Body.String(), "cpf").String())
	assert.False(t, gjson.Get(rec.Body.String(), "senha").Exists())

	rec = h.do(http.MethodPost, "/api/user/login", "", gin.H{"email": "ana@studio.dev", "senha": "errada123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_credentials", gjson.Get(rec.Body.String(), "error_code").String())

	rec = h.do(http.MethodPost, "/api/user/login", "", gin.H{"email": "ninguem@studio.dev", "senha": "errada123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_credentials", gjson.Get(rec.Body.String(), "error_code").String())

	rec = h.do(http.MethodPost, "/api/user/register", "", gin.H{
		"nome": "Ana", "sobrenome": "Souza", "cpf": "12345678901",
		"email": "ana@studio.dev", "senha": "segredo123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email_in_use", gjson.Get(rec.Body.String(), "error_code").String())
}

func TestAuth_RegisterRejectsTagFailures(t *testing.T) {
	h := localHarness(t)

	rec := h.do(http.MethodPost, "/api/user/register", "", gin.H{
		"nome": "Ana", "sobrenome": "Souza", "cpf": "12345678901",
		"email": "nao-e-email", "senha": "curta",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "validation_error", gjson.Get(body, "error_code").String())
	assert.Contains(t, gjson.Get(body, "message").String(), "email: deve ser um e-mail válido")
	assert.Contains(t, gjson.Get(body, "message").String(), "senha: deve ter no mínimo 8 caracteres")

	rec = h.do(http.MethodPost, "/api/user/login", "", gin.H{"email": "ana@studio.dev"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", gjson.Get(rec.Body.String(), "error_code").String())
}

func TestAuth_RecoverAlwaysAnswersTheSame(t *testing.T) {
	h := localHarness(t)
	h.signUp(t, "ana@studio.dev")

	known := h.do(http.MethodPost, "/api/user/recuperar-senha", "", gin.H{"email": "ana@studio.dev"})
	unknown := h.do(http.MethodPost, "/api/user/recuperar-senha", "", gin.H{"email": "x@studio.dev"})

	require.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestSecuredRoutes_RequireToken(t *testing.T) {
	h := localHarness(t)

	rec := h.do(http.MethodGet, "/api/client", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodGet, "/api/client", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestClient_Lifecycle(t *testing.T) {
	h := localHarness(t)
	token := h.signUp(t, "ana@studio.dev")
	id := h.newClient(t, token)
	path := "/api/client/" + itoa(id)

	rec := h.do(http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bruno Lima", gjson.Get(rec.Body.String(), "nome").String())

	rec = h.do(http.MethodPut, path, token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty_update", gjson.Get(rec.Body.String(), "error_code").String())

	rec = h.do(http.MethodPut, path, token, gin.H{"endereco": "Rua A, 10"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rua A, 10", gjson.Get(rec.Body.String(), "endereco").String())
	assert.Equal(t, "Bruno Lima", gjson.Get(rec.Body.String(), "nome").String())

	rec = h.do(http.MethodGet, "/api/client?nome=Bruno%20Lima", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, gjson.Parse(rec.Body.String()).Array(), 1)

	rec = h.do(http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "client_not_found", gjson.Get(rec.Body.String(), "error_code").String())

	rec = h.do(http.MethodGet, "/api/client/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClient_OtherUsersAreInvisible(t *testing.T) {
	h := localHarness(t)
	ana := h.signUp(t, "ana@studio.dev")
	caio := h.signUp(t, "caio@studio.dev")
	id := h.newClient(t, ana)

	rec := h.do(http.MethodGet, "/api/client/"+itoa(id), caio, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodDelete, "/api/client/"+itoa(id), caio, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodPost, "/api/sessions", caio, gin.H{
		"cliente_id":       id,
		"data_atendimento": "2025-10-25T10:00:00",
		"valor_sessao":     100,
		"numero_sessao":    1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSession_RejectsBadDate(t *testing.T) {
	h := localHarness(t)
	token := h.signUp(t, "ana@studio.dev")
	id := h.newClient(t, token)

	rec := h.do(http.MethodPost, "/api/sessions", token, gin.H{
		"cliente_id":       id,
		"data_atendimento": "2025/11/10 10:00",
		"valor_sessao":     100,
		"numero_sessao":    1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, gjson.Get(rec.Body.String(), "message").String(), "Formato de data e hora inválido")
}

func TestSession_FlowAndDashboard(t *testing.T) {
	h := localHarness(t)
	token := h.signUp(t, "ana@studio.dev")
	client := h.newClient(t, token)

	var ids []int64
	for _, s := range []struct {
		at    string
		value float64
	}{
		{"2025-10-25T10:00:00", 100},
		{"2025-10-25T15:00:00", 50},
	} {
		rec := h.do(http.MethodPost, "/api/sessions", token, gin.H{
			"cliente_id":       client,
			"data_atendimento": s.at,
			"valor_sessao":     s.value,
			"numero_sessao":    1,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "pending", gjson.Get(rec.Body.String(), "status").String())
		ids = append(ids, gjson.Get(rec.Body.String(), "sessao_id").Int())
	}

	rec := h.do(http.MethodGet, "/api/sessions/pendentes", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, gjson.Parse(rec.Body.String()).Array(), 2)

	for _, id := range ids {
		rec = h.do(http.MethodPatch, "/api/sessions/realizar/"+itoa(id), token, gin.H{"realizado": true})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, gjson.Get(rec.Body.String(), "realizado").Bool())
	}

	rec = h.do(http.MethodGet, "/api/sessions/cliente/"+itoa(client)+"/realizadas", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, gjson.Parse(rec.Body.String()).Array(), 2)

	rec = h.do(http.MethodGet, "/api/sessions?data=2025-10-25", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, gjson.Parse(rec.Body.String()).Array(), 2)

	rec = h.do(http.MethodGet, "/api/dashboard/sessions/value/day?dia=25&mes=10&ano=2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 150.0, gjson.Get(rec.Body.String(), "realizados").Float())
	assert.Equal(t, 0.0, gjson.Get(rec.Body.String(), "pendentes").Float())

	rec = h.do(http.MethodGet, "/api/dashboard/sessions/month?mes=10&ano=2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, gjson.Get(rec.Body.String(), "realizados").Float())

	rec = h.do(http.MethodGet, "/api/dashboard/sessions/day?dia=31&mes=2&ano=2025", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodDelete, "/api/sessions/"+itoa(ids[0]), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(http.MethodGet, "/api/sessions/"+itoa(ids[0]), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPerfil_RejectsForeignUserID(t *testing.T) {
	h := localHarness(t)
	token := h.signUp(t, "ana@studio.dev")

	rec := h.do(http.MethodPut, "/api/perfil", token, gin.H{"user_id": 999, "bio": "oi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPerfil_DeleteReportsIdentityFailure(t *testing.T) {
	h := remoteHarness(t)
	token := h.signUp(t, "ana@studio.dev")

	h.identity.DeleteErr = errors.New("provider down")

	rec := h.do(http.MethodDelete, "/api/perfil", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "identity_delete_failed", gjson.Get(rec.Body.String(), "error_code").String())

	// the local row is already gone
	rec = h.do(http.MethodGet, "/api/perfil", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPerfil_DeleteRemote(t *testing.T) {
	h := remoteHarness(t)
	token := h.signUp(t, "ana@studio.dev")

	rec := h.do(http.MethodDelete, "/api/perfil", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, h.identity.Accounts)
}

func TestHealth(t *testing.T) {
	db, mock := dbtest.New(t)
	mock.ExpectPing()

	store := memory.NewStore()
	d := baseDeps(store)
	d.DB = db
	d.Resolver = auth.NewJWTManager("x", time.Hour)

	r := gin.New()
	RegisterRoutes(r, d)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up", gjson.Get(rec.Body.String(), "database").String())

	h := localHarness(t)
	rec = h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "down", gjson.Get(rec.Body.String(), "database").String())
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
