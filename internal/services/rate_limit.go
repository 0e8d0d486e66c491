package services

import (
  "context"
  "time"

  "github.com/skillforged/skillforged-backend/internal/clients/redis"
  "github.com/skillforged/skillforged-backend/internal/logger"
)

const (
  rateLimitMax    = 5
  rateLimitWindow = 60 * time.Second
)

type RateLimitResult struct {
  Allowed   bool
  Remaining int
  ResetIn   time.Duration
}

// RateLimiter throttles expensive endpoints per caller identity using a
// Redis counter. Redis trouble fails open: generation availability
// matters more than strict limiting.
type RateLimiter interface {
  Check(ctx context.Context, identifier string) RateLimitResult
}

type rateLimiter struct {
  log   *logger.Logger
  store redis.Store
}

func NewRateLimiter(log *logger.Logger, store redis.Store) RateLimiter {
  return &rateLimiter{
    log:   log.With("service", "RateLimiter"),
    store: store,
  }
}

func (r *rateLimiter) Check(ctx context.Context, identifier string) RateLimitResult {
  count, resetIn, err := r.store.Increment(ctx, "ratelimit:"+identifier, rateLimitWindow)
  if err != nil {
    r.log.Warn("rate limit check failed, allowing request", "error", err)
    return RateLimitResult{Allowed: true, Remaining: rateLimitMax, ResetIn: 0}
  }

  remaining := rateLimitMax - int(count)
  if remaining < 0 {
    remaining = 0
  }
  return RateLimitResult{
    Allowed:   count <= rateLimitMax,
    Remaining: remaining,
    ResetIn:   resetIn,
  }
}
