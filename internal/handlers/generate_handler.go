package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/dto"
	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	mediauc "github.com/BruksfildServices01/ink-agenda/internal/usecase/media"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

// GenerateHandler serves /generate and the AI gallery.
type GenerateHandler struct {
	generate *mediauc.GenerateImage
	list     *mediauc.ListGenerated
	get      *mediauc.GetGenerated
	delete   *mediauc.DeleteGenerated
}

func NewGenerateHandler(
	generate *mediauc.GenerateImage,
	list *mediauc.ListGenerated,
	get *mediauc.GetGenerated,
	delete *mediauc.DeleteGenerated,
) *GenerateHandler {
	return &GenerateHandler{generate: generate, list: list, get: get, delete: delete}
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	var req validators.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		invalid(c, err)
		return
	}

	img, err := h.generate.Execute(c.Request.Context(), middleware.UserID(c), req.Prompt)
	if err != nil {
		respondError(c, err, "failed_to_generate_image", "Erro ao gerar imagem.")
		return
	}

	httpresp.Created(c, dto.ImageResponse{ID: img.ID, Image: img.URL})
}

func (h *GenerateHandler) List(c *gin.Context) {
	images, err := h.list.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_list_images", "Erro ao listar imagens.")
		return
	}

	httpresp.Array(c, images)
}

func (h *GenerateHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	img, err := h.get.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "failed_to_get_image", "Erro ao buscar imagem.")
		return
	}

	httpresp.OK(c, img)
}

func (h *GenerateHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "failed_to_delete_image", "Erro ao remover imagem.")
		return
	}

	httpresp.NoContent(c)
}
