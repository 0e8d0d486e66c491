package redis

import (
  "context"
  "encoding/json"
  "fmt"
  "os"
  "strings"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/skillforged/skillforged-backend/internal/logger"
)

// Store is the key/value contract every component shares: JSON values
// with expiry plus an atomic counter for rate-limit windows. It is the
// only cross-process channel in the system, so implementations must not
// assume in-process callers.
type Store interface {
  // GetJSON unmarshals the value at key into dest. Returns false on a
  // miss (and on store errors, which are logged and treated as misses).
  GetJSON(ctx context.Context, key string, dest any) bool
  // SetJSON stores value as JSON with the given TTL.
  SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
  // Increment atomically bumps the counter at key, arming the window
  // TTL on first increment. Returns the count and time until reset.
  Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type store struct {
  log *logger.Logger
  rdb *goredis.Client
}

func NewStore(log *logger.Logger) (Store, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }

  opts, err := optionsFromEnv()
  if err != nil {
    return nil, err
  }
  rdb := goredis.NewClient(opts)

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &store{
    log: log.With("service", "RedisStore"),
    rdb: rdb,
  }, nil
}

func optionsFromEnv() (*goredis.Options, error) {
  if rawURL := strings.TrimSpace(os.Getenv("REDIS_URL")); rawURL != "" {
    opts, err := goredis.ParseURL(rawURL)
    if err != nil {
      return nil, fmt.Errorf("parse REDIS_URL: %w", err)
    }
    opts.DialTimeout = 5 * time.Second
    return opts, nil
  }
  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_URL or REDIS_ADDR")
  }
  return &goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  }, nil
}

func (s *store) GetJSON(ctx context.Context, key string, dest any) bool {
  raw, err := s.rdb.Get(ctx, key).Result()
  if err != nil {
    if err != goredis.Nil {
      s.log.Warn("redis get failed", "key", key, "error", err)
    }
    return false
  }
  if err := json.Unmarshal([]byte(raw), dest); err != nil {
    s.log.Warn("bad cached payload", "key", key, "error", err)
    return false
  }
  return true
}

func (s *store) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
  raw, err := json.Marshal(value)
  if err != nil {
    return err
  }
  if err := s.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
    s.log.Warn("redis set failed", "key", key, "error", err)
    return err
  }
  return nil
}

func (s *store) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
  pipe := s.rdb.TxPipeline()
  incr := pipe.Incr(ctx, key)
  ttl := pipe.TTL(ctx, key)
  if _, err := pipe.Exec(ctx); err != nil {
    return 0, 0, err
  }

  count := incr.Val()
  resetIn := ttl.Val()
  // a fresh counter has no expiry yet; arm the window on first hit
  if resetIn < 0 {
    if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
      return count, window, err
    }
    resetIn = window
  }
  return count, resetIn, nil
}
