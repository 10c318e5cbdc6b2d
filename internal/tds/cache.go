package tds

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	logoCacheTTL    = 24 * time.Hour
	logoCachePrefix = "tds:logo:"
)

// LogoCache keeps compressed logo bytes in redis between renders. A nil
// cache or a nil client disables caching; redis errors behave like misses.
type LogoCache struct {
	Client *redis.Client
}

func (c *LogoCache) get(ctx context.Context, url string) *compressedImage {
	if c == nil || c.Client == nil {
		return nil
	}
	val, err := c.Client.Get(ctx, logoCachePrefix+url).Result()
	if err != nil {
		return nil
	}

	var img compressedImage
	if err := json.Unmarshal([]byte(val), &img); err != nil {
		return nil
	}
	return &img
}

func (c *LogoCache) put(ctx context.Context, url string, img *compressedImage) {
	if c == nil || c.Client == nil {
		return
	}
	b, err := json.Marshal(img)
	if err != nil {
		return
	}
	c.Client.Set(ctx, logoCachePrefix+url, b, logoCacheTTL)
}
