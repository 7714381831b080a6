package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/services"
	"github.com/skillatlas/skillatlas/internal/utils"
)

// SessionCookie carries the opaque server-side session id. The client
// never holds session contents, only this identifier.
const SessionCookie = "skillatlas_sid"

const identityKey = "identity"

// Identity is the authenticated caller, decoded once per request from
// the server-side session and carried through the gin context.
type Identity struct {
	UserID    string
	SessionID string
	Email     string
	FirstName string
	LastName  string
}

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// SessionAuth validates the session cookie against the session store and
// extends the rolling expiry. Requests without a valid session get 401.
func SessionAuth(sessions services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "unauthorized",
			})
			return
		}

		sess, err := sessions.Validate(c.Request.Context(), sid)
		if err != nil {
			status := utils.HTTPStatus(err)
			msg := "unauthorized"
			code := utils.CodeUnauthorized
			if status != http.StatusUnauthorized {
				msg = "internal error"
				code = utils.CodeInternal
			}
			c.AbortWithStatusJSON(status, apiError{Code: code, Message: msg})
			return
		}

		c.Set(identityKey, Identity{
			UserID:    sess.UserID,
			SessionID: sess.ID,
			Email:     sess.Email,
			FirstName: sess.FirstName,
			LastName:  sess.LastName,
		})
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
