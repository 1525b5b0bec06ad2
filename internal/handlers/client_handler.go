package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/middleware"
	ucClient "github.com/BruksfildServices01/ink-agenda/internal/usecase/client"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

type ClientHandler struct {
	create *ucClient.CreateClient
	list   *ucClient.ListClients
	get    *ucClient.GetClient
	update *ucClient.UpdateClient
	delete *ucClient.DeleteClient
}

func NewClientHandler(
	create *ucClient.CreateClient,
	list *ucClient.ListClients,
	get *ucClient.GetClient,
	update *ucClient.UpdateClient,
	delete *ucClient.DeleteClient,
) *ClientHandler {
	return &ClientHandler{
		create: create,
		list:   list,
		get:    get,
		update: update,
		delete: delete,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req validators.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		invalid(c, err)
		return
	}

	client, err := h.create.Execute(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	httpresp.Created(c, client)
}

// ======================================================
// LIST (?nome= | ?telefone= | all)
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	q := ucClient.ListQuery{
		Nome:     strings.TrimSpace(c.Query("nome")),
		Telefone: strings.TrimSpace(c.Query("telefone")),
	}

	clients, err := h.list.Execute(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.Array(c, clients)
}

// ======================================================
// GET / UPDATE / DELETE
// ======================================================

func (h *ClientHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	client, err := h.get.Execute(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req validators.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if req.Empty() {
		respondError(c, ucClient.ErrEmptyUpdate, "", "")
		return
	}
	if err := req.Validate(); err != nil {
		invalid(c, err)
		return
	}

	client, err := h.update.Execute(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "failed_to_delete_client", "Erro ao remover cliente.")
		return
	}

	httpresp.Message(c, "Cliente removido com sucesso.")
}
