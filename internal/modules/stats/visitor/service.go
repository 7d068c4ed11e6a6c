package visitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"github.com/mx-space/blog-admin/internal/pkg/metrics"
	"github.com/mx-space/blog-admin/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type Service struct {
	logs    LogRepository
	dir     Directory
	geo     GeoLocator
	policy  UserAgentPolicy
	logger  *zap.Logger
	metrics *metrics.Metrics
	loc     *time.Location

	defaultPageSize int
	maxPageSize     int
}

type ServiceOption func(*Service)

// WithLogger sets the logger for the visitor service.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("VisitorService")
		}
	}
}

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithGeo enables location enrichment. Without it entries keep whatever
// geoInfo they already have.
func WithGeo(g GeoLocator) ServiceOption {
	return func(s *Service) { s.geo = g }
}

func WithPolicy(p UserAgentPolicy) ServiceOption {
	return func(s *Service) { s.policy = p }
}

func WithPageSizes(defaultSize, maxSize int) ServiceOption {
	return func(s *Service) {
		s.defaultPageSize = defaultSize
		s.maxPageSize = maxSize
	}
}

// WithLocation sets the zone used for dates given without an offset.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewService(logs LogRepository, dir Directory, opts ...ServiceOption) *Service {
	s := &Service{
		logs:            logs,
		dir:             dir,
		policy:          DefaultUserAgentPolicy(),
		logger:          zap.NewNop(),
		loc:             time.Local,
		defaultPageSize: pagination.DefaultSize,
		maxPageSize:     pagination.MaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query returns one page of human visitor entries matching q, newest first.
func (s *Service) Query(ctx context.Context, q Query) (*Page, error) {
	crit, err := criteriaFromQuery(q, s.loc)
	if err != nil {
		return nil, err
	}
	pq := pagination.Normalize(q.Page, q.PageSize, s.defaultPageSize, s.maxPageSize)
	page := &Page{Visitors: []Visitor{}, Page: pq.Page, PageSize: pq.Size}

	if term := strings.TrimSpace(q.Username); term != "" {
		ids, err := s.dir.MatchUserIDs(ctx, term)
		if err != nil {
			return nil, apperr.Upstream("match users", err)
		}
		if len(ids) == 0 {
			return page, nil
		}
		crit.UserIDs = ids
	}

	filter := BuildFilter(s.policy, crit)

	page.TotalBeforeFiltering, err = s.logs.Count(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Upstream("count visitor logs", err)
	}
	page.Total, err = s.logs.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Upstream("count visitor logs", err)
	}
	page.TotalPages = pq.TotalPages(page.Total)

	entries, err := s.logs.Find(ctx, filter, pq.Skip(), int64(pq.Size))
	if err != nil {
		return nil, apperr.Upstream("find visitor logs", err)
	}
	page.Visitors, err = s.enrich(ctx, entries)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("访客记录查询",
		zap.Int64("total", page.Total),
		zap.Int64("filtered", page.TotalBeforeFiltering-page.Total),
		zap.Int("page", page.Page),
		zap.Int("returned", len(page.Visitors)))
	return page, nil
}

// DeleteByRange removes every entry inside the time range that also matches
// the optional location and article filters.
func (s *Service) DeleteByRange(ctx context.Context, q DeleteQuery) (*DeleteResult, error) {
	if strings.TrimSpace(q.StartDate) == "" || strings.TrimSpace(q.EndDate) == "" {
		return nil, apperr.Validation(msgRangeRequired)
	}
	start, err := parseDate(q.StartDate, s.loc)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(q.EndDate, s.loc)
	if err != nil {
		return nil, err
	}

	crit := Criteria{
		Start:   start,
		End:     end,
		Country: strings.TrimSpace(q.Country),
		Region:  strings.TrimSpace(q.Region),
		Article: strings.TrimSpace(q.Article),
	}
	n, err := s.logs.DeleteMany(ctx, BuildDeleteFilter(crit))
	if err != nil {
		return nil, apperr.Upstream("delete visitor logs", err)
	}
	s.metrics.RecordVisitorLogsDeleted(n)

	msg := fmt.Sprintf("成功删除 %d 条访客记录", n)
	s.logger.Info(msg,
		zap.Time("start", *start),
		zap.Time("end", *end),
		zap.String("country", crit.Country),
		zap.String("region", crit.Region),
		zap.String("article", crit.Article))

	return &DeleteResult{
		Success:      true,
		Message:      msg,
		DeletedCount: n,
		AffectedRange: map[string]string{
			"startDate": start.UTC().Format(time.RFC3339Nano),
			"endDate":   end.UTC().Format(time.RFC3339Nano),
		},
		Filters: map[string]string{
			"country": crit.Country,
			"region":  crit.Region,
			"article": crit.Article,
		},
	}, nil
}

// Options returns the filter choices for kind ("geo" or "all").
func (s *Service) Options(ctx context.Context, kind string) (*Options, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "all", "geo":
	default:
		return nil, apperr.Validation(msgUnknownOption)
	}
	opts, err := s.logs.GeoOptions(ctx)
	if err != nil {
		return nil, apperr.Upstream("load visitor options", err)
	}
	return opts, nil
}
