package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// ThrottleConfig holds configuration for the fixed-window limiter
type ThrottleConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
}

// throttleEntry tracks request count for a key (in-memory fallback)
type throttleEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

var (
	throttleStore = sync.Map{}
	cleanupOnce   sync.Once
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const throttleLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// startCleanup runs a background goroutine to clean up expired entries
func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			throttleStore.Range(func(key, value interface{}) bool {
				entry := value.(*throttleEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					throttleStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// ThrottleFromConfig builds the limiter settings from THROTTLE_TTL and
// THROTTLE_LIMIT, keyed per client IP.
func ThrottleFromConfig(cfg *config.Config) ThrottleConfig {
	return ThrottleConfig{
		Limit:     cfg.ThrottleLimit,
		Window:    time.Duration(cfg.ThrottleTTLSeconds) * time.Second,
		KeyPrefix: "throttle:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// Throttle creates a fixed-window rate limiting middleware.
// Uses Redis when available, falls back to in-memory when not.
func Throttle(cfg ThrottleConfig) gin.HandlerFunc {
	// Start cleanup goroutine once (for fallback)
	cleanupOnce.Do(startCleanup)

	return func(c *gin.Context) {
		fullKey := cfg.KeyPrefix + cfg.KeyFunc(c)
		now := time.Now()

		var count int
		var resetAt time.Time
		var err error

		redisClient := redis.Client()
		if redisClient != nil {
			count, resetAt, err = checkThrottleRedis(c.Request.Context(), redisClient, fullKey, cfg)
			if err != nil {
				// Fail open: a throttle backend outage must not take the
				// contact form down.
				logger.Log.Error("throttle redis check failed, using in-memory fallback", "error", err)
				count, resetAt = checkThrottleInMemory(fullKey, cfg, now)
			}
		} else {
			count, resetAt = checkThrottleInMemory(fullKey, cfg, now)
		}

		if count > cfg.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("throttle limit exceeded", "ip", c.ClientIP(), "path", c.FullPath())

			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		c.Next()
	}
}

// checkThrottleRedis checks the window using an atomic Lua script
func checkThrottleRedis(ctx context.Context, client *goredis.Client, key string, cfg ThrottleConfig) (int, time.Time, error) {
	ttlSeconds := int(cfg.Window.Seconds())

	result, err := client.Eval(ctx, throttleLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis throttle eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	resetAt := time.Now().Add(time.Duration(ttl) * time.Second)

	return int(count), resetAt, nil
}

// checkThrottleInMemory checks the window using the in-memory store (fallback)
func checkThrottleInMemory(key string, cfg ThrottleConfig, now time.Time) (int, time.Time) {
	entryI, _ := throttleStore.LoadOrStore(key, &throttleEntry{
		count:   0,
		resetAt: now.Add(cfg.Window),
	})
	entry := entryI.(*throttleEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Reset if window expired
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(cfg.Window)
	}

	entry.count++

	return entry.count, entry.resetAt
}
