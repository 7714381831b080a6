package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/services"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type RoadmapHandler struct {
	roadmaps services.RoadmapService
}

func NewRoadmapHandler(roadmaps services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmaps: roadmaps}
}

type GenerateRoadmapRequest struct {
	RoleID          string `json:"roleId"`
	EstimatedMonths int    `json:"estimatedMonths"`
}

func (h *RoadmapHandler) Generate(c *gin.Context) {
	const op = "RoadmapHandler.Generate"

	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req GenerateRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	if req.RoleID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "roleId is required", nil))
		return
	}

	roadmap, err := h.roadmaps.Generate(c.Request.Context(), id.UserID, req.RoleID, req.EstimatedMonths)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, roadmap)
}

func (h *RoadmapHandler) Latest(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	roadmap, err := h.roadmaps.Latest(c.Request.Context(), id.UserID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, roadmap)
}
