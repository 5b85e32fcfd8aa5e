package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "rl:profile:"

// updateRateLimit caps profile updates per user per minute. It must run
// after authRequired. Without Redis, or on cache errors, requests pass.
func (s *Server) updateRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cache == nil || maxPerMin <= 0 {
			return c.Next()
		}

		u := currentUser(c)
		if u == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := rateLimitPrefix + u.ID
		cnt, err := cache.Incr(ctx, key).Result()
		if err != nil {
			s.logger.Warn(ctx, "rate limit lookup failed", "user_id", u.ID, "error", err)
			return c.Next()
		}
		if cnt == 1 {
			if err := cache.Expire(ctx, key, time.Minute).Err(); err != nil {
				// A counter without a TTL would block the user for good.
				s.logger.Warn(ctx, "rate limit expiry failed", "user_id", u.ID, "error", err)
				cache.Del(ctx, key)
				return c.Next()
			}
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(fiber.StatusTooManyRequests, msgTooManyUpdates)
		}
		return c.Next()
	}
}
