package visitor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/blog-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"), func(c *gin.Context) { c.Next() })
	return r
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestHandlerList(t *testing.T) {
	var entries []models.VisitorLogModel
	for i := 0; i < 12; i++ {
		entries = append(entries, entry(i, iphoneSafari))
	}
	r := newTestRouter(NewService(newMemLogRepository(entries...), &MockDirectory{}))

	w := serve(r, http.MethodGet, "/api/visitors?page=2&pageSize=5&type=all")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Visitors, 5)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.NotEmpty(t, page.Visitors[0].EntryID)
}

func TestHandlerList_BadInput(t *testing.T) {
	r := newTestRouter(NewService(newMemLogRepository(), &MockDirectory{}))

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/api/visitors?page=abc").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/api/visitors?startDate=tomorrow").Code)
}

func TestHandlerDelete_MissingBounds(t *testing.T) {
	r := newTestRouter(NewService(&MockLogRepository{}, &MockDirectory{}))

	w := serve(r, http.MethodDelete, "/api/visitors?startDate=2024-01-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgRangeRequired)
}

func TestHandlerOptions(t *testing.T) {
	r := newTestRouter(NewService(newMemLogRepository(), &MockDirectory{}))

	w := serve(r, http.MethodGet, "/api/visitors/options?type=geo")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"countries":[],"regions":[]}`, w.Body.String())

	w = serve(r, http.MethodGet, "/api/visitors/options?type=nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
