package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/api/middleware"
	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/services"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type fakeCVService struct {
	uploads int
}

func (f *fakeCVService) Upload(ctx context.Context, userID, fileName string, data []byte) (*models.UserCV, error) {
	f.uploads++
	return &models.UserCV{ID: "cv1", UserID: userID, FileName: fileName}, nil
}

func (f *fakeCVService) Latest(ctx context.Context, userID string) (*models.UserCV, error) {
	return nil, utils.E(utils.CodeNotFound, "fake", "no cv", utils.ErrNotFound)
}

var _ services.CVService = (*fakeCVService)(nil)

func testIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", middleware.Identity{UserID: "u1", SessionID: "s1"})
	}
}

func multipartCV(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("cv", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func newCVRouter(svc services.CVService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCVHandler(svc, nil)
	r.POST("/api/cv/upload", testIdentity(), h.Upload)
	r.GET("/api/cv/latest", testIdentity(), h.Latest)
	return r
}

func TestCVUploadRejectsNonPDF(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  []byte
	}{
		{"wrong extension", "resume.docx", []byte("%PDF-1.4 pretending")},
		{"renamed non-pdf", "resume.pdf", []byte("plain text, not a pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCVService{}
			r := newCVRouter(svc)

			body, contentType := multipartCV(t, tt.fileName, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/api/cv/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			// rejection must happen before any extraction work
			if svc.uploads != 0 {
				t.Errorf("service called %d times, want 0", svc.uploads)
			}
		})
	}
}

func TestCVUploadAcceptsPDF(t *testing.T) {
	svc := &fakeCVService{}
	r := newCVRouter(svc)

	body, contentType := multipartCV(t, "resume.pdf", []byte("%PDF-1.7 minimal"))
	req := httptest.NewRequest(http.MethodPost, "/api/cv/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.uploads != 1 {
		t.Errorf("service called %d times, want 1", svc.uploads)
	}
}

func TestCVUploadMissingFile(t *testing.T) {
	svc := &fakeCVService{}
	r := newCVRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/cv/upload", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCVLatestEmptyIsNull(t *testing.T) {
	r := newCVRouter(&fakeCVService{})

	req := httptest.NewRequest(http.MethodGet, "/api/cv/latest", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "null" {
		t.Errorf("body = %q, want null", got)
	}
}
