// Package catalog talks to the public exercise catalog (ExerciseDB shape).
// Responses are passed through unchanged and cached in-process by request.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-resty/resty/v2"
	"github.com/nnamm/go-workout-tracker/internal/config"
	"github.com/nnamm/go-workout-tracker/internal/metrics"
	"github.com/nnamm/go-workout-tracker/internal/models"

	log "github.com/sirupsen/logrus"
)

const (
	megabyte         = 1024 * 1024
	defaultCacheSize = 16 * megabyte
	defaultLimit     = 10
	maxLimit         = 100
)

// ErrUpstream is wrapped by every error caused by the catalog service itself
// (transport failure, non-2xx status, undecodable body).
var ErrUpstream = errors.New("exercise catalog unavailable")

type Client struct {
	httpClient *resty.Client
	cache      *freecache.Cache
	cacheTTL   time.Duration
	metrics    *metrics.Manager
}

// NewClient builds a catalog client. metricsManager may be nil.
func NewClient(cfg config.CatalogConfig, metricsManager *metrics.Manager) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err == nil && r.StatusCode() >= 500
		}).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		httpClient.SetHeader("X-RapidAPI-Key", cfg.APIKey)
	}
	if cfg.APIHost != "" {
		httpClient.SetHeader("X-RapidAPI-Host", cfg.APIHost)
	}

	cacheSize := cfg.CacheSizeMB * megabyte
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	return &Client{
		httpClient: httpClient,
		cache:      freecache.NewCache(cacheSize),
		cacheTTL:   cfg.CacheTTL,
		metrics:    metricsManager,
	}
}

// List returns one page of exercises, optionally restricted to a target muscle.
// limit is clamped to [1, 100] (0 means 10), negative offsets become 0.
func (c *Client) List(ctx context.Context, target string, limit, offset int) ([]models.Exercise, error) {
	limit, offset = normalizePage(limit, offset)
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "all" {
		target = ""
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetQueryParam("offset", fmt.Sprint(offset))

	path := "/exercises"
	if target != "" {
		path = "/exercises/target/{target}"
		req.SetPathParam("target", target)
	}

	cacheKey := fmt.Sprintf("exercises::%s::%d::%d", target, limit, offset)
	body, err := c.get(req, path, cacheKey)
	if err != nil {
		return nil, err
	}

	exercises := []models.Exercise{}
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("%w: decode exercises: %v", ErrUpstream, err)
	}
	return exercises, nil
}

// Targets returns the list of target muscles known to the catalog.
func (c *Client) Targets(ctx context.Context) ([]string, error) {
	body, err := c.get(c.httpClient.R().SetContext(ctx), "/exercises/targetList", "targets")
	if err != nil {
		return nil, err
	}

	targets := []string{}
	if err := json.Unmarshal(body, &targets); err != nil {
		return nil, fmt.Errorf("%w: decode targets: %v", ErrUpstream, err)
	}
	return targets, nil
}

func (c *Client) get(req *resty.Request, path, cacheKey string) ([]byte, error) {
	if cached, err := c.cache.Get([]byte(cacheKey)); err == nil {
		log.Tracef("catalog cache hit: %s", cacheKey)
		c.metrics.CatalogCacheHit()
		return cached, nil
	}
	c.metrics.CatalogCacheMiss()

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrUpstream, path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: get %s: status %d", ErrUpstream, path, resp.StatusCode())
	}

	body := resp.Body()
	if c.cacheTTL > 0 {
		if err := c.cache.Set([]byte(cacheKey), body, max(1, int(c.cacheTTL.Seconds()))); err != nil {
			log.Errorf("failed to write catalog cache for %s: %s", cacheKey, err)
		}
	}
	return body, nil
}

func normalizePage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
