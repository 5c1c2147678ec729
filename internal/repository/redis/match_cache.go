package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anupamx/matrimony-backend/internal/domain"
	"github.com/anupamx/matrimony-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const generationKey = "matches:gen"

// matchCache stores computed match lists under a key that embeds a global
// write generation. Invalidate bumps the generation, so every cached entry
// becomes unreachable after any profile write. Failures degrade to a miss.
type matchCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewMatchCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) repository.MatchCache {
	return &matchCache{client: client, ttl: ttl, log: log}
}

func (c *matchCache) key(ctx context.Context, userID int) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("matches:%d:%d", gen, userID), nil
}

// Get resolves the generation-qualified key once and hands it back as the
// store token. A write that bumps the generation after the lookup leaves the
// token pointing at the old generation, so the eventual Set lands on a key
// no reader resolves anymore and the stale result expires with its TTL.
func (c *matchCache) Get(ctx context.Context, userID int) ([]*domain.Profile, string, bool) {
	key, err := c.key(ctx, userID)
	if err != nil {
		c.log.WithError(err).Warn("match cache unavailable, skipping lookup")
		return nil, "", false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).Warn("match cache lookup failed")
		}
		return nil, key, false
	}

	var matches []*domain.Profile
	if err := json.Unmarshal(data, &matches); err != nil {
		c.log.WithError(err).Warn("match cache entry corrupt, dropping")
		c.client.Del(ctx, key)
		return nil, key, false
	}
	return matches, key, true
}

func (c *matchCache) Set(ctx context.Context, token string, matches []*domain.Profile) {
	if token == "" {
		return
	}

	data, err := json.Marshal(matches)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, token, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("match cache store failed")
	}
}

func (c *matchCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.log.WithError(err).Warn("match cache invalidation failed")
	}
}
