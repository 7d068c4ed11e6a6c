// Package geo resolves visitor IP addresses to coarse locations using an
// ip-api.com compatible JSON endpoint.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"github.com/mx-space/blog-admin/internal/pkg/metrics"
)

const lookupFields = "status,country,countryCode,regionName,region,city"

// ErrUnknownLocation means the endpoint could not place the address.
var ErrUnknownLocation = errors.New("geo: unknown location")

// Client looks up IP locations over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	metrics  *metrics.Metrics
}

// New returns a Client for endpoint, e.g. http://ip-api.com/json.
func New(endpoint string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
		metrics:  m,
	}
}

type lookupResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	RegionName  string `json:"regionName"`
	Region      string `json:"region"`
	City        string `json:"city"`
}

// Lookup resolves ip. Private, loopback and malformed addresses return
// ErrUnknownLocation without a request.
func (c *Client) Lookup(ctx context.Context, ip string) (*models.GeoInfo, error) {
	if !routable(ip) {
		c.metrics.RecordGeoLookup("miss")
		return nil, ErrUnknownLocation
	}

	u := fmt.Sprintf("%s/%s?fields=%s", c.endpoint, url.PathEscape(ip), lookupFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordGeoLookup("error")
		return nil, apperr.Upstream("geo lookup", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordGeoLookup("error")
		return nil, apperr.Upstream("geo lookup", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.metrics.RecordGeoLookup("error")
		return nil, apperr.Upstream("geo lookup", err)
	}
	if result.Status != "success" {
		c.metrics.RecordGeoLookup("miss")
		return nil, ErrUnknownLocation
	}

	region := result.RegionName
	if region == "" {
		region = result.Region
	}
	c.metrics.RecordGeoLookup("hit")
	return &models.GeoInfo{
		Country:     result.Country,
		CountryCode: result.CountryCode,
		Region:      region,
		City:        result.City,
	}, nil
}

func routable(ip string) bool {
	addr := net.ParseIP(strings.TrimSpace(ip))
	if addr == nil {
		return false
	}
	return !(addr.IsPrivate() || addr.IsLoopback() || addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast())
}
