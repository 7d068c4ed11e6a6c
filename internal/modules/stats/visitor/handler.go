package visitor

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
	g := rg.Group("/visitors", authMW)
	g.GET("", h.list)
	g.GET("/options", h.options)
	g.DELETE("", h.deleteRange)
}

func (h *Handler) list(c *gin.Context) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, err := h.svc.Query(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

func (h *Handler) deleteRange(c *gin.Context) {
	var q DeleteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.svc.DeleteByRange(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) options(c *gin.Context) {
	opts, err := h.svc.Options(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, opts)
}
