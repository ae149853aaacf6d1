package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handlershared "github.com/brandsite-api/internal/http/handlers/shared"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/provider"
	"github.com/brandsite-api/internal/repository"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

const driverFailure = "pq: password authentication failed for user \"blog\" at 10.0.0.5:5432"

// brokenPostRepository 所有读写都返回底层驱动错误
type brokenPostRepository struct{}

func (brokenPostRepository) List(context.Context, repository.PostListFilter) ([]models.BlogPost, int64, error) {
	return nil, 0, errors.New(driverFailure)
}

func (brokenPostRepository) GetBySlug(context.Context, string, bool) (*models.BlogPost, error) {
	return nil, errors.New(driverFailure)
}

func (brokenPostRepository) GetByID(context.Context, string) (*models.BlogPost, error) {
	return nil, errors.New(driverFailure)
}

func (brokenPostRepository) Create(context.Context, *models.BlogPost) error {
	return errors.New(driverFailure)
}

func (brokenPostRepository) Update(context.Context, *models.BlogPost) error {
	return errors.New(driverFailure)
}

func (brokenPostRepository) Delete(context.Context, string) (bool, error) {
	return false, errors.New(driverFailure)
}

func (brokenPostRepository) CountBySlug(context.Context, string, string) (int64, error) {
	return 0, errors.New(driverFailure)
}

func newBrokenPostEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(&provider.Container{PostService: service.NewPostService(brokenPostRepository{}, nil)})
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(handlershared.ContextEditorID, "editor-1")
		c.Set(handlershared.ContextEditorEmail, "editor@example.com")
		c.Next()
	})
	r.GET("/admin/posts", h.GetAdminPosts)
	r.POST("/admin/posts", h.CreatePost)
	r.PUT("/admin/posts/:id/status", h.UpdatePostStatus)
	r.DELETE("/admin/posts/:id", h.DeletePost)
	return r
}

func TestPostHandlersDoNotLeakBackendErrors(t *testing.T) {
	r := newBrokenPostEngine()
	cases := []struct {
		method string
		path   string
		body   string
		msg    string
	}{
		{method: http.MethodGet, path: "/admin/posts", msg: "failed to load posts"},
		{method: http.MethodPost, path: "/admin/posts", body: `{"title":"Hello"}`, msg: "failed to save post"},
		{method: http.MethodPut, path: "/admin/posts/p-1/status", body: `{"status":"archived"}`, msg: "failed to update post status"},
		{method: http.MethodDelete, path: "/admin/posts/p-1", msg: "failed to delete post"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if strings.Contains(w.Body.String(), "10.0.0.5") || strings.Contains(w.Body.String(), "pq:") {
				t.Fatalf("backend error leaked: %s", w.Body.String())
			}
			var resp struct {
				StatusCode int    `json:"status_code"`
				Msg        string `json:"msg"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if resp.StatusCode != 500 || resp.Msg != tc.msg {
				t.Fatalf("want 500 %q got %d %q", tc.msg, resp.StatusCode, resp.Msg)
			}
		})
	}
}

func TestUpdatePostStatusRejectsUnknownStatus(t *testing.T) {
	r := newBrokenPostEngine()
	req := httptest.NewRequest(http.MethodPut, "/admin/posts/p-1/status", strings.NewReader(`{"status":"scheduled"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"status_code":400`) {
		t.Fatalf("unknown status want 400, got %s", w.Body.String())
	}
}
