package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/usecase/perfil"
)

type StyleHandler struct {
	list *perfil.ListStyles
}

func NewStyleHandler(list *perfil.ListStyles) *StyleHandler {
	return &StyleHandler{list: list}
}

func (h *StyleHandler) List(c *gin.Context) {
	styles, err := h.list.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_list_styles", "Erro ao listar especialidades.")
		return
	}

	httpresp.Array(c, styles)
}
