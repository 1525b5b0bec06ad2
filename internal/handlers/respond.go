package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

type businessSpec struct {
	status  int
	message string
}

// businessErrors maps use case codes to responses.
var businessErrors = map[string]businessSpec{
	"client_not_found":  {http.StatusNotFound, "Cliente não encontrado."},
	"session_not_found": {http.StatusNotFound, "Sessão não encontrada."},
	"photo_not_found":   {http.StatusNotFound, "Foto não encontrada."},
	"image_not_found":   {http.StatusNotFound, "Imagem não encontrada."},
	"user_not_found":    {http.StatusNotFound, "Usuário não encontrado."},

	"style_not_found":           {http.StatusBadRequest, "Especialidade não encontrada."},
	"empty_update":              {http.StatusBadRequest, "Nenhum campo para atualizar."},
	"invalid_status_transition": {http.StatusBadRequest, "Mudança de status não permitida."},

	"email_in_use":         {http.StatusBadRequest, "E-mail já cadastrado."},
	"email_domain_invalid": {http.StatusBadRequest, "O domínio do e-mail não recebe mensagens."},
	"identity_rejected":    {http.StatusBadRequest, "Não foi possível criar a conta com estes dados."},
	"invalid_credentials":  {http.StatusBadRequest, "E-mail ou senha inválidos."},
	"invalid_reset_token":  {http.StatusBadRequest, "Token de recuperação inválido ou expirado."},

	"image_required":    {http.StatusBadRequest, "Envie uma imagem no campo 'image'."},
	"image_too_large":   {http.StatusBadRequest, "A imagem excede o limite de 10MB ou 40 megapixels."},
	"image_unsupported": {http.StatusBadRequest, "Formato de imagem não suportado."},

	"storage_failed":         {http.StatusInternalServerError, "Falha ao acessar o armazenamento de imagens."},
	"generation_failed":      {http.StatusInternalServerError, "Não foi possível gerar a imagem."},
	"identity_delete_failed": {http.StatusInternalServerError, "Perfil removido, mas a conta de autenticação não pôde ser excluída."},
}

// respondError is the single translation point from use case errors to HTTP.
// Anything unknown is logged and reported as code/message with a 500.
func respondError(c *gin.Context, err error, code, message string) {
	var verrs validators.Errors
	if errors.As(err, &verrs) {
		invalid(c, verrs)
		return
	}

	if bc := httperr.BusinessCode(err); bc != "" {
		if spec, ok := businessErrors[bc]; ok {
			httperr.Write(c, spec.status, bc, spec.message)
			return
		}
	}

	logrus.WithError(err).
		WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString(middleware.ContextRequestID),
		}).
		Error(code)
	httperr.Internal(c, code, message)
}

func invalid(c *gin.Context, err error) {
	httperr.BadRequest(c, "validation_error", "Dados inválidos: "+err.Error())
}

func badBody(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
}

// bindFailed answers a ShouldBindJSON error: tag failures become field
// errors, anything else is a malformed body.
func bindFailed(c *gin.Context, err error) {
	if errs, ok := validators.FromBinding(err); ok {
		invalid(c, errs)
		return
	}
	badBody(c)
}
