package visitor

import (
	"context"
	"errors"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const geoConcurrency = 4

// GeoLocator resolves an IP address to a location.
type GeoLocator interface {
	Lookup(ctx context.Context, ip string) (*models.GeoInfo, error)
}

// enrich decorates a page window with location, user and article data.
// Geo failures are logged and skipped; directory store errors are returned.
func (s *Service) enrich(ctx context.Context, entries []models.VisitorLogModel) ([]Visitor, error) {
	visitors := make([]Visitor, len(entries))
	for i, e := range entries {
		visitors[i] = Visitor{VisitorLogModel: e, EntryID: e.ID.Hex()}
	}
	if len(visitors) == 0 {
		return visitors, nil
	}

	s.enrichGeo(ctx, visitors)
	if err := s.enrichUsers(ctx, visitors); err != nil {
		return nil, err
	}
	if err := s.enrichArticles(ctx, visitors); err != nil {
		return nil, err
	}
	return visitors, nil
}

// enrichGeo looks up each distinct IP lacking a country once and caches the
// result on every entry of the window that carries it.
func (s *Service) enrichGeo(ctx context.Context, visitors []Visitor) {
	if s.geo == nil {
		return
	}
	byIP := make(map[string][]int)
	var order []string
	for i, v := range visitors {
		if v.IP == "" || (v.GeoInfo != nil && v.GeoInfo.Country != "") {
			continue
		}
		if _, ok := byIP[v.IP]; !ok {
			order = append(order, v.IP)
		}
		byIP[v.IP] = append(byIP[v.IP], i)
	}

	var g errgroup.Group
	g.SetLimit(geoConcurrency)
	for _, ip := range order {
		ip, idxs := ip, byIP[ip]
		g.Go(func() error {
			info, err := s.geo.Lookup(ctx, ip)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					s.logger.Debug("IP地理位置查询失败", zap.String("ip", ip), zap.Error(err))
				}
				return nil
			}
			for _, i := range idxs {
				geo := *info
				visitors[i].GeoInfo = &geo
				if err := s.logs.SetGeoInfo(ctx, visitors[i].ID, geo); err != nil {
					s.logger.Warn("更新访客地理信息失败", zap.String("id", visitors[i].EntryID), zap.Error(err))
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) enrichUsers(ctx context.Context, visitors []Visitor) error {
	var ids []string
	seen := make(map[string]struct{})
	for _, v := range visitors {
		id := string(v.UserID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := s.dir.UsersByID(ctx, ids)
	if err != nil {
		return apperr.Upstream("resolve visitor users", err)
	}
	for i := range visitors {
		u, ok := users[string(visitors[i].UserID)]
		if !ok {
			continue
		}
		visitors[i].UserName = u.Name
		visitors[i].UserEmail = u.Email
		visitors[i].UserAvatar = u.Avatar
	}
	return nil
}

func (s *Service) enrichArticles(ctx context.Context, visitors []Visitor) error {
	var ids []string
	seen := make(map[string]struct{})
	for _, v := range visitors {
		id := articleIDFromPath(v.Path)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	titles, err := s.dir.ArticleTitles(ctx, ids)
	if err != nil {
		return apperr.Upstream("resolve visitor articles", err)
	}
	for i := range visitors {
		if title, ok := titles[articleIDFromPath(visitors[i].Path)]; ok {
			visitors[i].ArticleTitle = title
		}
	}
	return nil
}
