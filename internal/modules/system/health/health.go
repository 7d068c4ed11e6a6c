// Package health reports dependency status and exposes the daily log files
// written by nativelog to administrators.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/blog-admin/internal/pkg/nativelog"
	"github.com/mx-space/blog-admin/internal/pkg/response"
)

const pingTimeout = 2 * time.Second

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type logItem struct {
	Size     string `json:"size"`
	Filename string `json:"filename"`
	Created  int64  `json:"created"`
}

type Handler struct {
	deps   map[string]Pinger
	logDir string
	now    func() time.Time
}

// NewHandler reports every non-nil dependency in deps under its key.
func NewHandler(deps map[string]Pinger, logDir string) *Handler {
	live := make(map[string]Pinger, len(deps))
	for name, p := range deps {
		if p != nil {
			live[name] = p
		}
	}
	return &Handler{deps: live, logDir: nativelog.ResolveDir(logDir), now: time.Now}
}

// RegisterRoutes mounts the public probe on root and the log routes on api.
func (h *Handler) RegisterRoutes(root gin.IRoutes, api *gin.RouterGroup, authMW gin.HandlerFunc) {
	root.GET("/health", h.health)

	logs := api.Group("/health/log", authMW)
	logs.GET("/list", h.listLogs)
	logs.GET("", h.readLog)
	logs.DELETE("", h.deleteLog)
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	body := gin.H{}
	for name, p := range h.deps {
		ok := p.Ping(ctx) == nil
		body[name] = ok
		if !ok {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	body["status"] = status
	c.JSON(code, body)
}

func (h *Handler) listLogs(c *gin.Context) {
	entries, err := os.ReadDir(h.logDir)
	if errors.Is(err, os.ErrNotExist) {
		response.OK(c, []logItem{})
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]logItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, logItem{
			Size:     formatByteSize(info.Size()),
			Filename: entry.Name(),
			Created:  info.ModTime().UnixMilli(),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Created > items[j].Created
	})
	response.OK(c, items)
}

func (h *Handler) readLog(c *gin.Context) {
	path, ok := h.resolve(c)
	if !ok {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		response.NotFoundMsg(c, "日志文件不存在")
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

// deleteLog truncates today's file, which is still being written, and
// removes any other.
func (h *Handler) deleteLog(c *gin.Context) {
	path, ok := h.resolve(c)
	if !ok {
		return
	}
	today := filepath.Join(h.logDir, nativelog.TodayFilename(h.now()))
	var err error
	if filepath.Clean(path) == filepath.Clean(today) {
		err = os.WriteFile(path, nil, 0o644)
	} else {
		err = os.Remove(path)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) resolve(c *gin.Context) (string, bool) {
	name := filepath.Base(strings.TrimSpace(c.Query("filename")))
	if name == "" || name == "." || name == string(filepath.Separator) || !strings.HasSuffix(name, ".log") {
		response.BadRequest(c, "filename must be a .log file")
		return "", false
	}
	return filepath.Join(h.logDir, name), true
}

func formatByteSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
