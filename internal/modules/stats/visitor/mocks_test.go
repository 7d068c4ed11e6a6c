package visitor

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockLogRepository is a function-field LogRepository. Unset fields panic.
type MockLogRepository struct {
	CountFunc      func(ctx context.Context, filter bson.M) (int64, error)
	FindFunc       func(ctx context.Context, filter bson.M, skip, limit int64) ([]models.VisitorLogModel, error)
	SetGeoInfoFunc func(ctx context.Context, id primitive.ObjectID, info models.GeoInfo) error
	DeleteManyFunc func(ctx context.Context, filter bson.M) (int64, error)
	GeoOptionsFunc func(ctx context.Context) (*Options, error)
}

func (m *MockLogRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return m.CountFunc(ctx, filter)
}

func (m *MockLogRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.VisitorLogModel, error) {
	return m.FindFunc(ctx, filter, skip, limit)
}

func (m *MockLogRepository) SetGeoInfo(ctx context.Context, id primitive.ObjectID, info models.GeoInfo) error {
	return m.SetGeoInfoFunc(ctx, id, info)
}

func (m *MockLogRepository) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	return m.DeleteManyFunc(ctx, filter)
}

func (m *MockLogRepository) GeoOptions(ctx context.Context) (*Options, error) {
	return m.GeoOptionsFunc(ctx)
}

// MockDirectory is a function-field Directory. Unset fields resolve nothing.
type MockDirectory struct {
	MatchUserIDsFunc  func(ctx context.Context, term string) ([]string, error)
	UsersByIDFunc     func(ctx context.Context, ids []string) (map[string]UserSummary, error)
	ArticleTitlesFunc func(ctx context.Context, ids []string) (map[string]string, error)
}

func (m *MockDirectory) MatchUserIDs(ctx context.Context, term string) ([]string, error) {
	if m.MatchUserIDsFunc == nil {
		return nil, nil
	}
	return m.MatchUserIDsFunc(ctx, term)
}

func (m *MockDirectory) UsersByID(ctx context.Context, ids []string) (map[string]UserSummary, error) {
	if m.UsersByIDFunc == nil {
		return map[string]UserSummary{}, nil
	}
	return m.UsersByIDFunc(ctx, ids)
}

func (m *MockDirectory) ArticleTitles(ctx context.Context, ids []string) (map[string]string, error) {
	if m.ArticleTitlesFunc == nil {
		return map[string]string{}, nil
	}
	return m.ArticleTitlesFunc(ctx, ids)
}

// MockGeoLocator counts lookups.
type MockGeoLocator struct {
	mu         sync.Mutex
	calls      int
	LookupFunc func(ctx context.Context, ip string) (*models.GeoInfo, error)
}

func (m *MockGeoLocator) Lookup(ctx context.Context, ip string) (*models.GeoInfo, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.LookupFunc(ctx, ip)
}

func (m *MockGeoLocator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// memLogRepository evaluates the subset of query operators the filter
// builder emits against in-memory entries.
type memLogRepository struct {
	mu      sync.Mutex
	entries []models.VisitorLogModel
}

func newMemLogRepository(entries ...models.VisitorLogModel) *memLogRepository {
	return &memLogRepository{entries: entries}
}

func (r *memLogRepository) Count(_ context.Context, filter bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if matchFilter(e, filter) {
			n++
		}
	}
	return n, nil
}

func (r *memLogRepository) Find(_ context.Context, filter bson.M, skip, limit int64) ([]models.VisitorLogModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var hits []models.VisitorLogModel
	for _, e := range r.entries {
		if matchFilter(e, filter) {
			hits = append(hits, e)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Timestamp.After(hits[j].Timestamp) })
	if skip >= int64(len(hits)) {
		return []models.VisitorLogModel{}, nil
	}
	hits = hits[skip:]
	if limit > 0 && limit < int64(len(hits)) {
		hits = hits[:limit]
	}
	return hits, nil
}

func (r *memLogRepository) SetGeoInfo(_ context.Context, id primitive.ObjectID, info models.GeoInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			geo := info
			r.entries[i].GeoInfo = &geo
		}
	}
	return nil
}

func (r *memLogRepository) DeleteMany(_ context.Context, filter bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	var n int64
	for _, e := range r.entries {
		if matchFilter(e, filter) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return n, nil
}

func (r *memLogRepository) GeoOptions(_ context.Context) (*Options, error) {
	return &Options{Countries: []string{}, Regions: []string{}}, nil
}

func matchFilter(e models.VisitorLogModel, filter bson.M) bool {
	for key, cond := range filter {
		if key == "$and" {
			for _, sub := range cond.(bson.A) {
				if !matchFilter(e, sub.(bson.M)) {
					return false
				}
			}
			continue
		}
		val, exists := fieldOf(e, key)
		if !matchCond(val, exists, cond.(bson.M)) {
			return false
		}
	}
	return true
}

func fieldOf(e models.VisitorLogModel, key string) (interface{}, bool) {
	switch key {
	case "userAgent":
		return e.UserAgent, e.UserAgent != ""
	case "ip":
		return e.IP, true
	case "path":
		return e.Path, true
	case "timestamp":
		return e.Timestamp, true
	case "userId":
		return string(e.UserID), e.UserID != ""
	case "geoInfo.country":
		if e.GeoInfo == nil {
			return nil, false
		}
		return e.GeoInfo.Country, true
	case "geoInfo.region":
		if e.GeoInfo == nil {
			return nil, false
		}
		return e.GeoInfo.Region, true
	}
	panic("unexpected filter field " + key)
}

func matchCond(val interface{}, exists bool, cond bson.M) bool {
	s, _ := val.(string)
	if pattern, ok := cond["$regex"]; ok {
		return exists && regexp.MustCompile("(?i)"+pattern.(string)).MatchString(s)
	}
	for op, arg := range cond {
		switch op {
		case "$exists":
			if exists != arg.(bool) {
				return false
			}
		case "$nin":
			for _, x := range arg.(bson.A) {
				if (x == nil && !exists) || (exists && x == val) {
					return false
				}
			}
		case "$not":
			re := arg.(primitive.Regex)
			if exists && regexp.MustCompile("(?i)"+re.Pattern).MatchString(s) {
				return false
			}
		case "$in":
			if !exists || !inRefs(s, arg.([]interface{})) {
				return false
			}
		case "$gte":
			if val.(time.Time).Before(arg.(time.Time)) {
				return false
			}
		case "$lte":
			if val.(time.Time).After(arg.(time.Time)) {
				return false
			}
		default:
			panic("unexpected operator " + op)
		}
	}
	return true
}

func inRefs(s string, values []interface{}) bool {
	for _, v := range values {
		switch x := v.(type) {
		case string:
			if x == s {
				return true
			}
		case primitive.ObjectID:
			if x.Hex() == s {
				return true
			}
		}
	}
	return false
}

const (
	desktopChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	iphoneSafari  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func entry(minutes int, ua string) models.VisitorLogModel {
	return models.VisitorLogModel{
		ID:        primitive.NewObjectID(),
		Timestamp: baseTime.Add(time.Duration(minutes) * time.Minute),
		IP:        "203.0.113.7",
		UserAgent: ua,
		Path:      "/",
	}
}
