package visitor

import (
	"strings"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// parseDate accepts ISO-8601 timestamps and plain dates. A plain date is UTC
// midnight; other values without a zone are read in loc.
func parseDate(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano || layout == time.DateOnly {
			t, err = time.Parse(layout, raw)
		} else {
			t, err = time.ParseInLocation(layout, raw, loc)
		}
		if err == nil {
			return &t, nil
		}
	}
	return nil, apperr.Validation(msgInvalidDate)
}

// criteriaFromQuery validates q. UserIDs is left for the caller to resolve.
func criteriaFromQuery(q Query, loc *time.Location) (Criteria, error) {
	scope := strings.ToLower(strings.TrimSpace(q.Type))
	switch scope {
	case "":
		scope = ScopeAll
	case ScopeAll, ScopeUsers:
	default:
		return Criteria{}, apperr.Validation(msgInvalidScope)
	}
	start, err := parseDate(q.StartDate, loc)
	if err != nil {
		return Criteria{}, err
	}
	end, err := parseDate(q.EndDate, loc)
	if err != nil {
		return Criteria{}, err
	}
	return Criteria{
		Scope:   scope,
		Start:   start,
		End:     end,
		IP:      strings.TrimSpace(q.IPFilter),
		Country: strings.TrimSpace(q.Country),
		Region:  strings.TrimSpace(q.Region),
		Article: strings.TrimSpace(q.Article),
	}, nil
}

// BuildFilter returns the listing filter: the user agent baseline of policy
// AND every dimension set in c.
func BuildFilter(policy UserAgentPolicy, c Criteria) bson.M {
	filter := bson.M{"$and": policy.Clauses()}

	switch {
	case c.UserIDs != nil:
		filter["userId"] = bson.M{"$in": models.RefMatchValues(c.UserIDs...)}
	case c.Scope == ScopeUsers:
		filter["userId"] = bson.M{"$exists": true, "$nin": bson.A{nil, ""}}
	}
	if c.IP != "" {
		filter["ip"] = containsText(c.IP)
	}
	applyShared(filter, c)
	return filter
}

// BuildDeleteFilter returns the bulk delete filter. The user agent baseline
// is not applied, so filtered-out traffic in the range is removed too.
func BuildDeleteFilter(c Criteria) bson.M {
	filter := bson.M{}
	applyShared(filter, c)
	return filter
}

func applyShared(filter bson.M, c Criteria) {
	if c.Start != nil || c.End != nil {
		ts := bson.M{}
		if c.Start != nil {
			ts["$gte"] = *c.Start
		}
		if c.End != nil {
			ts["$lte"] = *c.End
		}
		filter["timestamp"] = ts
	}
	if c.Country != "" {
		filter["geoInfo.country"] = containsText(c.Country)
	}
	if c.Region != "" {
		filter["geoInfo.region"] = containsText(c.Region)
	}
	if c.Article != "" {
		filter["path"] = containsText("/posts/" + c.Article)
	}
}

// articleIDFromPath extracts {id} from /posts/{id}[/...].
func articleIDFromPath(path string) string {
	if !strings.HasPrefix(path, "/posts/") {
		return ""
	}
	rest := strings.TrimPrefix(path, "/posts/")
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
