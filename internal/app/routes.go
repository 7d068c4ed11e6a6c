package app

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/blog-admin/internal/middleware"
	"github.com/mx-space/blog-admin/internal/modules/auth/user"
	"github.com/mx-space/blog-admin/internal/modules/content/article"
	"github.com/mx-space/blog-admin/internal/modules/content/comment"
	"github.com/mx-space/blog-admin/internal/modules/gateway/revalidate"
	"github.com/mx-space/blog-admin/internal/modules/stats/dashboard"
	"github.com/mx-space/blog-admin/internal/modules/stats/visitor"
	"github.com/mx-space/blog-admin/internal/modules/system/health"
	"github.com/mx-space/blog-admin/internal/modules/system/settings"
	"github.com/mx-space/blog-admin/internal/pkg/response"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) registerRoutes() error {
	r := a.router
	db := a.store.DB()
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth())

	deps := map[string]health.Pinger{"database": a.store}
	if a.redis != nil {
		deps["redis"] = a.redis
	}
	health.NewHandler(deps, a.cfg.LogDir).RegisterRoutes(r, api, authMW)

	var publicMW []gin.HandlerFunc
	if a.redis != nil && a.cfg.RateLimit.Enable {
		publicMW = append(publicMW, middleware.RateLimit(a.redis, a.cfg.RateLimit.Max, a.cfg.RateLimit.Window(), a.logger))
	}
	commentSvc := comment.NewService(comment.NewMongoRepository(db),
		comment.WithLogger(a.logger),
		comment.WithMetrics(a.metrics),
	)
	comment.NewHandler(commentSvc).RegisterRoutes(api, authMW, publicMW...)

	visitorSvc, err := NewVisitorService(db, a.cfg, a.logger, a.metrics)
	if err != nil {
		return err
	}
	visitor.NewHandler(visitorSvc).RegisterRoutes(api, authMW)

	articleOpts := []article.ServiceOption{article.WithLogger(a.logger)}
	if rv := revalidate.New(a.cfg.Frontend.URL, a.cfg.Frontend.RevalidateToken, a.logger); rv != nil {
		articleOpts = append(articleOpts, article.WithRevalidator(rv))
	}
	article.NewHandler(article.NewService(article.NewMongoRepository(db), articleOpts...)).RegisterRoutes(api, authMW)

	user.NewHandler(user.NewService(user.NewMongoRepository(db), user.WithLogger(a.logger))).RegisterRoutes(api, authMW)
	settings.NewHandler(settings.NewService(settings.NewMongoRepository(db), settings.WithLogger(a.logger))).RegisterRoutes(api, authMW)
	dashboard.NewHandler(dashboard.NewService(dashboard.NewMongoSource(db), dashboard.WithLogger(a.logger))).RegisterRoutes(api, authMW)
	return nil
}
