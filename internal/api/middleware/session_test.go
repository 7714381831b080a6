package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type fakeSessionService struct {
	sessions map[string]*models.Session
}

func (f *fakeSessionService) Start(ctx context.Context, u *models.User) (*models.Session, error) {
	return nil, nil
}

func (f *fakeSessionService) Validate(ctx context.Context, sessionID string) (*models.Session, error) {
	if s, ok := f.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, utils.E(utils.CodeUnauthorized, "fake", "session expired", nil)
}

func (f *fakeSessionService) Destroy(ctx context.Context, sessionID string) error { return nil }

func newAuthRouter(svc *fakeSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", SessionAuth(svc), func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID, "email": id.Email})
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	svc := &fakeSessionService{sessions: map[string]*models.Session{
		"sid-1": {ID: "sid-1", UserID: "u1", Email: "a@b.test"},
	}}
	r := newAuthRouter(svc)

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid session carries identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-1"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		want := `{"email":"a@b.test","userId":"u1"}`
		if rec.Body.String() != want {
			t.Errorf("body = %s, want %s", rec.Body.String(), want)
		}
	})
}
