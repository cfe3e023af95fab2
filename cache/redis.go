package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ratePrefix = "presence:attendance-rate:"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings. The caller closes the client at shutdown.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// RateCache stores daily attendance rates in Redis. Rate keys carry the
// day's generation, built from a global counter and a per-day counter that
// Invalidate increments. Redis failures are logged and reported as misses.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRateCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RateCache {
	return &RateCache{client: client, ttl: ttl, log: log}
}

const globalGenKey = ratePrefix + "gen"

func dayGenKey(day string) string { return ratePrefix + "gen:" + day }

func rateKey(day, gen string) string { return ratePrefix + day + ":" + gen }

func (c *RateCache) Generation(ctx context.Context, day string) (string, bool) {
	vals, err := c.client.MGet(ctx, globalGenKey, dayGenKey(day)).Result()
	if err != nil {
		c.log.Warn("rate cache generation read failed", zap.String("day", day), zap.Error(err))
		return "", false
	}
	counter := func(v interface{}) string {
		if s, ok := v.(string); ok {
			return s
		}
		return "0"
	}
	return counter(vals[0]) + "." + counter(vals[1]), true
}

func (c *RateCache) Get(ctx context.Context, day, gen string) (int, bool) {
	rate, err := c.client.Get(ctx, rateKey(day, gen)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("rate cache read failed", zap.String("day", day), zap.Error(err))
		}
		return 0, false
	}
	return rate, true
}

func (c *RateCache) Set(ctx context.Context, day, gen string, rate int) {
	if err := c.client.Set(ctx, rateKey(day, gen), rate, c.ttl).Err(); err != nil {
		c.log.Warn("rate cache write failed", zap.String("day", day), zap.Error(err))
	}
}

// Invalidate bumps the generation of days, or the global generation when no
// day is given. Rates stored under an older generation expire with their TTL.
func (c *RateCache) Invalidate(ctx context.Context, days ...string) {
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(days) == 0 {
			pipe.Incr(ctx, globalGenKey)
			return nil
		}
		for _, d := range days {
			pipe.Incr(ctx, dayGenKey(d))
		}
		return nil
	})
	if err != nil {
		c.log.Warn("rate cache invalidation failed", zap.Strings("days", days), zap.Error(err))
	}
}
