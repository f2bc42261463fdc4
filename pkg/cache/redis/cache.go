package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/artem13815/resumecompare/pkg/comparison"
)

const keyPrefix = "resumecompare:cmp:"

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ComparisonCache implements comparison.Cache on top of Redis.
type ComparisonCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewComparisonCache(client goredis.Cmdable, ttl time.Duration) *ComparisonCache {
	return &ComparisonCache{client: client, ttl: ttl}
}

func (c *ComparisonCache) Get(ctx context.Context, checksum string) (comparison.Response, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+checksum).Bytes()
	if errors.Is(err, goredis.Nil) {
		return comparison.Response{}, false, nil
	}
	if err != nil {
		return comparison.Response{}, false, err
	}
	var resp comparison.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return comparison.Response{}, false, fmt.Errorf("decode cached response: %w", err)
	}
	return resp, true, nil
}

func (c *ComparisonCache) Set(ctx context.Context, checksum string, resp comparison.Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+checksum, raw, c.ttl).Err()
}
