// internal/judge/cache.go
package judge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"swot-engine/internal/common/database"
	"swot-engine/internal/common/logger"
)

// CachedJudge wraps another Judge with a Redis cache so identical criterion
// texts for the same scenario and mode are judged once per TTL window.
// Cache failures degrade to calling the inner judge.
type CachedJudge struct {
	inner  Judge
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedJudge(inner Judge, redis *database.RedisClient, ttl time.Duration, log logger.Logger) *CachedJudge {
	return &CachedJudge{
		inner:  inner,
		redis:  redis,
		ttl:    ttl,
		logger: log,
	}
}

func (c *CachedJudge) Judge(ctx context.Context, input *Input) (float64, error) {
	key := cacheKey(input)

	if cached, err := c.redis.Get(ctx, key); err == nil {
		if value, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			c.logger.Debug("Judgment served from cache", map[string]interface{}{
				"area": string(input.Area),
			})
			return value, nil
		}
	}

	value, err := c.inner.Judge(ctx, input)
	if err != nil {
		return 0, err
	}

	if err := c.redis.Set(ctx, key, strconv.FormatFloat(value, 'f', -1, 64), c.ttl); err != nil {
		c.logger.Warn("Failed to cache judgment", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return value, nil
}

func cacheKey(input *Input) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		input.Mode,
		input.Area,
		input.ScenarioName,
		input.ScenarioDescription,
		input.CriterionText,
		"v1",
	)))
	return "judgment:" + hex.EncodeToString(sum[:])
}
