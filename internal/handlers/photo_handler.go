package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	mediauc "github.com/BruksfildServices01/ink-agenda/internal/usecase/media"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

type PhotoHandler struct {
	upload *mediauc.UploadPhoto
	list   *mediauc.ListPhotos
	get    *mediauc.GetPhoto
	delete *mediauc.DeletePhoto
}

func NewPhotoHandler(
	upload *mediauc.UploadPhoto,
	list *mediauc.ListPhotos,
	get *mediauc.GetPhoto,
	delete *mediauc.DeletePhoto,
) *PhotoHandler {
	return &PhotoHandler{upload: upload, list: list, get: get, delete: delete}
}

// Upload handles multipart image + titulo + descricao.
func (h *PhotoHandler) Upload(c *gin.Context) {
	meta := validators.PhotoMeta{
		Titulo:    c.PostForm("titulo"),
		Descricao: c.PostForm("descricao"),
	}
	if err := meta.Validate(); err != nil {
		invalid(c, err)
		return
	}

	filename, data, ok := imageFile(c)
	if !ok {
		return
	}

	p, err := h.upload.Execute(c.Request.Context(), middleware.UserID(c), filename, data, meta)
	if err != nil {
		respondError(c, err, "failed_to_upload_photo", "Erro ao enviar foto.")
		return
	}

	httpresp.Created(c, p)
}

func (h *PhotoHandler) ListMine(c *gin.Context) {
	h.respondList(c, middleware.UserID(c))
}

// ListByUser is public.
func (h *PhotoHandler) ListByUser(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.respondList(c, userID)
}

func (h *PhotoHandler) respondList(c *gin.Context, userID uint) {
	photos, err := h.list.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed_to_list_photos", "Erro ao listar fotos.")
		return
	}

	httpresp.Array(c, photos)
}

// Get is public.
func (h *PhotoHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed_to_get_photo", "Erro ao buscar foto.")
		return
	}

	httpresp.OK(c, p)
}

func (h *PhotoHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "failed_to_delete_photo", "Erro ao remover foto.")
		return
	}

	httpresp.NoContent(c)
}
