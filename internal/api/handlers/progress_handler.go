package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/services"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type ProgressHandler struct {
	progress services.ProgressService
}

func NewProgressHandler(progress services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

type UpdateProgressRequest struct {
	SkillID string `json:"skillId"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

func (h *ProgressHandler) Update(c *gin.Context) {
	const op = "ProgressHandler.Update"

	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	if req.SkillID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "skillId is required", nil))
		return
	}

	record, err := h.progress.Update(c.Request.Context(), id.UserID, req.SkillID, req.Status, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *ProgressHandler) List(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	records, err := h.progress.ListByUser(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
