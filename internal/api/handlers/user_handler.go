package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/services"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Stats(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	stats, err := h.users.Stats(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) Activity(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	items, err := h.users.Activity(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
