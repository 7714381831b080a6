package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/api/middleware"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// writeError maps an AppError onto its HTTP status; only the safe
// message crosses the boundary.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requireIdentity(c *gin.Context) (middleware.Identity, bool) {
	if id, ok := middleware.IdentityFrom(c); ok && id.UserID != "" {
		return id, true
	}
	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return middleware.Identity{}, false
}
