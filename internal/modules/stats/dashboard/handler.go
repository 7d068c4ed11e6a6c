package dashboard

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/blog-admin/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/dashboard", authMW, h.overview)
}

func (h *Handler) overview(c *gin.Context) {
	response.OK(c, h.svc.Overview(c.Request.Context()))
}
