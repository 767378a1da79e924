// Package adminlog fetches the moderation backend's flagged-content history
// for the read-only admin viewer.
package adminlog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/textsense/textsense-client/internal/models"
)

// CacheInterface defines the one-shot fetch-and-cache contract the admin
// viewer consumes.
type CacheInterface interface {
	Load(ctx context.Context) ([]models.AdminLogEntry, int, error)
}

type logsResponse struct {
	N       int                    `json:"n"`
	Results []models.AdminLogEntry `json:"results"`
}

// Cache fetches the admin log at most once per session. Both success and
// failure are cached: a failed first load keeps returning its error without
// re-fetching. The viewer renders an error state instead of retrying.
type Cache struct {
	client  *resty.Client
	baseURL string
	limit   int

	mu      sync.Mutex
	loaded  bool
	entries []models.AdminLogEntry
	count   int
	err     error
}

// Ensure Cache implements CacheInterface
var _ CacheInterface = (*Cache)(nil)

// NewCache creates an admin log cache against the given backend.
func NewCache(baseURL string, limit int, timeout time.Duration) *Cache {
	return &Cache{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", "TextSense-Client/1.0"),
		baseURL: baseURL,
		limit:   limit,
	}
}

// Load returns the cached admin log snapshot, fetching it on the first
// call. Subsequent calls perform no network interaction regardless of
// whether the first attempt succeeded.
func (c *Cache) Load(ctx context.Context) ([]models.AdminLogEntry, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.entries, c.count, c.err
	}
	c.loaded = true

	entries, count, err := c.fetch(ctx)
	if err != nil {
		logrus.Warnf("Admin log fetch failed: %v", err)
		c.err = err
		return nil, 0, err
	}

	c.entries = entries
	c.count = count
	logrus.Infof("Cached %d admin log entries", count)
	return c.entries, c.count, nil
}

// Reset discards the cached snapshot so the next Load fetches again.
// Exists for tests; the viewer never calls it.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = false
	c.entries = nil
	c.count = 0
	c.err = nil
}

func (c *Cache) fetch(ctx context.Context) ([]models.AdminLogEntry, int, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprintf("%d", c.limit)).
		Get(c.baseURL + "/admin/logs")

	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch admin logs: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, 0, fmt.Errorf("admin logs endpoint returned status %d", resp.StatusCode())
	}

	var result logsResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, 0, fmt.Errorf("failed to parse admin logs response: %w", err)
	}

	return result.Results, result.N, nil
}
