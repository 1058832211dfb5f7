package policy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"visa-engine/internal/logging"
	"visa-engine/internal/model"
)

const feedCacheKey = "visa-engine:policy-updates"

// Feed reads updates from an external JSON feed at <baseURL>/updates and caches the
// payload. Any failure falls back to the built-in updates; it never retries.
type Feed struct {
	baseURL  string
	client   *http.Client
	cache    Cache
	ttl      time.Duration
	fallback Provider
}

func NewFeed(baseURL string, timeout time.Duration, cache Cache, ttl time.Duration) *Feed {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Feed{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:    cache,
		ttl:      ttl,
		fallback: Defaults{},
	}
}

func (f *Feed) Updates(ctx context.Context, profile *model.StudentProfile) ([]model.PolicyUpdate, error) {
	if cached, ok := f.cache.Get(ctx, feedCacheKey); ok {
		if updates, err := ParseUpdates([]byte(cached)); err == nil {
			return updates, nil
		}
	}

	body, err := f.fetch(ctx)
	if err == nil {
		var updates []model.PolicyUpdate
		updates, err = ParseUpdates(body)
		if err == nil {
			if cerr := f.cache.Set(ctx, feedCacheKey, string(body), f.ttl); cerr != nil {
				logging.Log.WithError(cerr).Warn("policy feed: cache write failed")
			}
			return updates, nil
		}
	}

	logging.Log.WithFields(logrus.Fields{
		"feed":  f.baseURL,
		"error": err,
	}).Warn("policy feed unavailable, using built-in updates")
	return f.fallback.Updates(ctx, profile)
}

func (f *Feed) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/updates", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPolicyFeed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPolicyFeed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", model.ErrPolicyFeed, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
