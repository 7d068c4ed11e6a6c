package comment

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/blog-admin/internal/middleware"
	"github.com/mx-space/blog-admin/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the comment routes. Creating a comment is public and
// goes through publicMW (rate limiting); everything else requires authMW.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, publicMW ...gin.HandlerFunc) {
	g := rg.Group("/comments")

	create := make([]gin.HandlerFunc, 0, len(publicMW)+1)
	create = append(create, publicMW...)
	g.POST("", append(create, h.create)...)

	a := g.Group("", authMW)
	a.GET("", h.list)
	a.GET("/count", h.countByPost)
	a.GET("/:id", h.get)
	a.PATCH("/:id", h.updateContent)
	a.PATCH("/:id/status", h.updateStatus)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

func (h *Handler) get(c *gin.Context) {
	cm, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cm)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	// only admins may pick a status; everyone else enters moderation
	if !middleware.IsAdmin(c) {
		dto.Status = ""
	}
	cm, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"success":   true,
		"message":   "评论已成功发布",
		"commentId": cm.ID,
	})
}

func (h *Handler) updateContent(c *gin.Context) {
	var dto UpdateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.svc.UpdateContent(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cm)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var dto UpdateStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), dto.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cm)
}

func (h *Handler) delete(c *gin.Context) {
	res, err := h.svc.DeleteTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"success":      true,
		"message":      "评论已成功删除",
		"deletedCount": res.DeletedCount,
	})
}

func (h *Handler) countByPost(c *gin.Context) {
	counts, err := h.svc.CountByPost(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}
