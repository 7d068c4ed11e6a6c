// Package revalidate asks the public frontend to rebuild cached pages after
// content changes.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// Target is one page to rebuild.
type Target struct {
	Path   string  `json:"path"`
	PostID *string `json:"postId"`
}

// ArticleTargets lists the pages that show an article.
func ArticleTargets(articleID string) []Target {
	id := articleID
	return []Target{
		{Path: "/"},
		{Path: "/posts"},
		{Path: "/posts/" + articleID, PostID: &id},
	}
}

// Client posts revalidation requests to {frontend}/api/revalidate.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *zap.Logger
}

// New returns nil when frontendURL is empty; a nil *Client is a no-op.
func New(frontendURL, token string, logger *zap.Logger) *Client {
	frontendURL = strings.TrimRight(strings.TrimSpace(frontendURL), "/")
	if frontendURL == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: frontendURL + "/api/revalidate",
		token:    token,
		http:     &http.Client{Timeout: requestTimeout},
		logger:   logger.Named("Revalidate"),
	}
}

// Revalidate sends one request per target and joins the failures.
func (c *Client) Revalidate(ctx context.Context, targets ...Target) error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, t := range targets {
		if err := c.send(ctx, t); err != nil {
			c.logger.Warn("重新验证前端失败", zap.String("path", t.Path), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Client) send(ctx context.Context, t Target) error {
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("revalidate %s: %s %s", t.Path, resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}
