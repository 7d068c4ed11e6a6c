package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog_admin"

// Metrics holds all application collectors.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CommentsDeletedTotal  prometheus.Counter
	CommentTreeRoundTrips prometheus.Histogram
	GeoLookupsTotal       *prometheus.CounterVec
	VisitorLogsDeleted    prometheus.Counter
}

// New creates and registers all metrics with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates and registers all metrics with a custom registry.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),
		CommentsDeletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_deleted_total",
			Help:      "Comments removed by cascading deletes",
		}),
		CommentTreeRoundTrips: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "comment_tree_roundtrips",
			Help:      "Store round-trips needed to collect one comment subtree",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16, 32},
		}),
		GeoLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "geo_lookups_total",
				Help:      "IP geo lookups by result",
			},
			[]string{"result"},
		),
		VisitorLogsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visitor_logs_deleted_total",
			Help:      "Visitor log entries removed by bulk deletes",
		}),
	}
}

// NewNop returns metrics bound to a private registry, for tests and CLI use.
func NewNop() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// RecordHTTPRequest records one handled request.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if endpoint == "" {
		endpoint = "unmatched"
	}
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCommentTreeDelete records a finished cascading delete.
func (m *Metrics) RecordCommentTreeDelete(deleted int64, roundTrips int) {
	if m == nil {
		return
	}
	m.CommentsDeletedTotal.Add(float64(deleted))
	m.CommentTreeRoundTrips.Observe(float64(roundTrips))
}

// RecordGeoLookup counts a geo lookup outcome ("hit", "miss", "error").
func (m *Metrics) RecordGeoLookup(result string) {
	if m == nil {
		return
	}
	m.GeoLookupsTotal.WithLabelValues(result).Inc()
}

// RecordVisitorLogsDeleted counts bulk-deleted visitor entries.
func (m *Metrics) RecordVisitorLogsDeleted(n int64) {
	if m == nil {
		return
	}
	m.VisitorLogsDeleted.Add(float64(n))
}

// ShouldSkipEndpoint reports whether a path is excluded from HTTP metrics.
func ShouldSkipEndpoint(path string) bool {
	return path == "/metrics" || path == "/health"
}
