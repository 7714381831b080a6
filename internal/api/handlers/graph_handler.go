package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/services"
)

type GraphHandler struct {
	graphs services.GraphService
}

func NewGraphHandler(graphs services.GraphService) *GraphHandler {
	return &GraphHandler{graphs: graphs}
}

func (h *GraphHandler) Get(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	graph, err := h.graphs.Graph(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, graph)
}
