package comment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/blog-admin/internal/middleware"
	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	NewHandler(NewService(repo)).RegisterRoutes(r.Group("/api"), pass)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerDelete(t *testing.T) {
	root := reply("p1", nil)
	child := reply("p1", &root)
	r := newTestRouter(newMemRepository(root, child))

	w := doRequest(r, http.MethodDelete, "/api/comments/"+root.ID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Success      bool   `json:"success"`
		Message      string `json:"message"`
		DeletedCount int64  `json:"deletedCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(2), body.DeletedCount)
}

func TestHandlerDelete_Errors(t *testing.T) {
	r := newTestRouter(newMemRepository())

	w := doRequest(r, http.MethodDelete, "/api/comments/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgInvalidID)

	w = doRequest(r, http.MethodDelete, "/api/comments/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), msgTreeNotFound)
}

func TestHandlerCreateAndList(t *testing.T) {
	r := newTestRouter(newMemRepository())

	w := doRequest(r, http.MethodPost, "/api/comments", `{"postId":"p9","content":"first"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"commentId"`)

	w = doRequest(r, http.MethodPost, "/api/comments", `{"postId":"p9"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/comments?postId=p9", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "first", list.Data[0]["content"])
	assert.Equal(t, "pending", list.Data[0]["status"])
}

func TestHandlerCreate_AnonymousStatusIsModerated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newMemRepository()
	r := gin.New()
	NewHandler(NewService(repo)).RegisterRoutes(r.Group("/api", middleware.OptionalAuth()), middleware.Auth())

	w := doRequest(r, http.MethodPost, "/api/comments", `{"postId":"p1","content":"spam","status":"approved"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token, err := jwt.Sign("admin-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(`{"postId":"p1","content":"ok","status":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	stored, err := repo.List(t.Context(), "p1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	byContent := map[string]models.CommentStatus{}
	for _, cm := range stored {
		byContent[cm.Content] = cm.Status
	}
	assert.Equal(t, models.CommentPending, byContent["spam"])
	assert.Equal(t, models.CommentApproved, byContent["ok"])
}

func TestHandlerUpdateContent_EmptyBodyTouches(t *testing.T) {
	cm := reply("p1", nil)
	repo := newMemRepository(cm)
	r := newTestRouter(repo)

	w := doRequest(r, http.MethodPatch, "/api/comments/"+cm.ID.Hex(), `{}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := repo.FindByID(t.Context(), cm.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", stored.Content)
	assert.False(t, stored.UpdatedAt.IsZero())

	w = doRequest(r, http.MethodPatch, "/api/comments/"+primitive.NewObjectID().Hex(), `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerUpdateStatus(t *testing.T) {
	cm := reply("p1", nil)
	r := newTestRouter(newMemRepository(cm))

	w := doRequest(r, http.MethodPatch, "/api/comments/"+cm.ID.Hex()+"/status", `{"status":"rejected"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)

	w = doRequest(r, http.MethodPatch, "/api/comments/"+cm.ID.Hex()+"/status", `{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerCount(t *testing.T) {
	r := newTestRouter(newMemRepository(reply("a", nil), reply("a", nil)))

	w := doRequest(r, http.MethodGet, "/api/comments/count", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"articleId":"a","count":2}]}`, w.Body.String())
}
