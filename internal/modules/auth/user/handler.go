package user

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/users", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/profile", h.profile)
	g.POST("/update-avatar", h.updateAvatar)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

func (h *Handler) get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"success": true,
		"message": "用户创建成功",
		"userId":  u.ID,
	})
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true, "message": "用户更新成功"})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true, "message": "用户删除成功"})
}

func (h *Handler) profile(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	if uid == "" {
		response.Unauthorized(c)
		return
	}
	p, err := h.svc.Profile(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) updateAvatar(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	if uid == "" {
		response.Unauthorized(c)
		return
	}
	var dto UpdateAvatarDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.UpdateAvatar(c.Request.Context(), uid, dto.AvatarURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true, "message": "头像更新成功", "user": p})
}
