package app

import (
	"github.com/mx-space/blog-admin/internal/config"
	"github.com/mx-space/blog-admin/internal/modules/stats/geo"
	"github.com/mx-space/blog-admin/internal/modules/stats/visitor"
	"github.com/mx-space/blog-admin/internal/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NewVisitorService wires the visitor log service the same way for the HTTP
// server and the CLI.
func NewVisitorService(db *mongo.Database, cfg *config.AppConfig, logger *zap.Logger, m *metrics.Metrics) (*visitor.Service, error) {
	loc, err := Location(cfg)
	if err != nil {
		return nil, err
	}
	opts := []visitor.ServiceOption{
		visitor.WithLogger(logger),
		visitor.WithMetrics(m),
		visitor.WithPageSizes(cfg.Visitors.DefaultPageSize, cfg.Visitors.MaxPageSize),
		visitor.WithLocation(loc),
	}
	if cfg.Geo.Enable {
		opts = append(opts, visitor.WithGeo(geo.New(cfg.Geo.Endpoint, cfg.Geo.Timeout(), m)))
	}
	return visitor.NewService(visitor.NewLogRepository(db), visitor.NewDirectory(db), opts...), nil
}
