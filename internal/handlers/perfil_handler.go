package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/dto"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	"github.com/BruksfildServices01/ink-agenda/internal/usecase/perfil"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

type PerfilHandler struct {
	get    *perfil.GetPerfil
	update *perfil.UpdatePerfil
	delete *perfil.DeletePerfil
	photo  *perfil.UploadProfilePhoto
}

func NewPerfilHandler(
	get *perfil.GetPerfil,
	update *perfil.UpdatePerfil,
	delete *perfil.DeletePerfil,
	photo *perfil.UploadProfilePhoto,
) *PerfilHandler {
	return &PerfilHandler{get: get, update: update, delete: delete, photo: photo}
}

func (h *PerfilHandler) Get(c *gin.Context) {
	u, err := h.get.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_get_profile", "Erro ao buscar perfil.")
		return
	}

	httpresp.OK(c, u)
}

func (h *PerfilHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	var req validators.UpdatePerfilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	// user_id is accepted for compatibility but must be the caller's
	if req.UserID.Present() && req.UserID.Value != userID {
		httperr.Forbidden(c, "forbidden", "Você só pode alterar o próprio perfil.")
		return
	}

	patch, err := req.Validate()
	if err != nil {
		invalid(c, err)
		return
	}

	u, err := h.update.Execute(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err, "failed_to_update_profile", "Erro ao atualizar perfil.")
		return
	}

	httpresp.OK(c, u)
}

func (h *PerfilHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err, "failed_to_delete_profile", "Erro ao remover perfil.")
		return
	}

	httpresp.Message(c, "Perfil removido com sucesso.")
}

// UploadPhoto handles POST /image/perfil (multipart field "image").
func (h *PerfilHandler) UploadPhoto(c *gin.Context) {
	filename, data, ok := imageFile(c)
	if !ok {
		return
	}

	url, err := h.photo.Execute(c.Request.Context(), middleware.UserID(c), filename, data)
	if err != nil {
		respondError(c, err, "failed_to_upload_photo", "Erro ao enviar foto de perfil.")
		return
	}

	httpresp.OK(c, dto.ImageResponse{Image: url})
}
