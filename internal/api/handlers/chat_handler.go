package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/services"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

func (h *ChatHandler) Messages(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	messages, err := h.chat.History(c.Request.Context(), id.UserID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) Send(c *gin.Context) {
	const op = "ChatHandler.Send"

	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	if req.Content == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "content is required", nil))
		return
	}

	reply, err := h.chat.Send(c.Request.Context(), id.UserID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
