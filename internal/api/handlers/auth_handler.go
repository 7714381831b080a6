package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/api/middleware"
	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/services"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type AuthHandler struct {
	auth     services.AuthService
	sessions services.SessionService
}

func NewAuthHandler(auth services.AuthService, sessions services.SessionService) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sessionID, maxAge, "/", "", false, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Register", "invalid request body", err))
		return
	}

	u, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeError(c, err)
		return
	}

	sess, err := h.sessions.Start(c.Request.Context(), u)
	if err != nil {
		writeError(c, err)
		return
	}
	h.setSessionCookie(c, sess.ID, int(services.SessionTTL.Seconds()))

	c.JSON(http.StatusOK, userResponse(u))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	sess, err := h.sessions.Start(c.Request.Context(), u)
	if err != nil {
		writeError(c, err)
		return
	}
	h.setSessionCookie(c, sess.ID, int(services.SessionTTL.Seconds()))

	c.JSON(http.StatusOK, userResponse(u))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.sessions.Destroy(c.Request.Context(), id.SessionID); err != nil {
		writeError(c, err)
		return
	}
	h.setSessionCookie(c, "", -1)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	u, err := h.auth.UserByID(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
