package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/database"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Limiter decides whether an API key may make another request today
type Limiter interface {
	Allow(ctx context.Context, key database.APIKey) bool
}

const dailyWindow = 24 * time.Hour

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter counts requests per key per day in redis. It fails open.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	logger *zap.Logger
	now    func() time.Time
}

// NewRedisLimiter connects to the redis URL and verifies it with a ping
func NewRedisLimiter(ctx context.Context, url string, logger *zap.Logger) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return newRedisLimiter(client, logger), nil
}

func newRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
		logger: logger,
		now:    time.Now,
	}
}

// Allow implements Limiter
func (l *RedisLimiter) Allow(ctx context.Context, key database.APIKey) bool {
	if l == nil || l.client == nil || key.RateLimit <= 0 {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	rk := fmt.Sprintf("ratelimit:%d:%s", key.ID, l.now().UTC().Format("2006-01-02"))
	allowed, err := l.script.Run(ctx, l.client, []string{rk}, dailyWindow.Milliseconds(), key.RateLimit).Int64()
	if err != nil {
		l.logger.Warn("rate limit check failed, allowing request", zap.Error(err))
		return true
	}
	return allowed == 1
}

// Close releases the redis connection
func (l *RedisLimiter) Close() error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Close()
}

// DBLimiter compares today's recorded usage with the key's limit
type DBLimiter struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewDBLimiter creates a limiter backed by the api_usage table
func NewDBLimiter(db *gorm.DB, logger *zap.Logger) *DBLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBLimiter{db: db, logger: logger, now: time.Now}
}

// Allow implements Limiter
func (l *DBLimiter) Allow(ctx context.Context, key database.APIKey) bool {
	if key.RateLimit <= 0 {
		return true
	}
	count, err := database.RequestsOn(l.db.WithContext(ctx), key.ID, l.now())
	if err != nil {
		l.logger.Warn("usage lookup failed, allowing request", zap.Error(err))
		return true
	}
	return count < key.RateLimit
}
