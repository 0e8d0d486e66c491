package services

import (
  "context"
  "crypto/md5"
  "encoding/hex"
  "sort"
  "sync"
  "time"

  "github.com/skillforged/skillforged-backend/internal/clients/redis"
  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

const (
  minRequestInterval = 500 * time.Millisecond
  routerMaxRetries   = 3
  routerRetryBase    = 3 * time.Second
  aiCacheTTL         = time.Hour
  // candidates tried per round before backing off
  modelsPerRound = 2
)

// ModelRouter picks a model for each prompt, walking the task's
// shortlist by priority, cooling off models that hit quota, and caching
// successful completions.
type ModelRouter interface {
  Route(ctx context.Context, prompt string, task types.TaskType) types.AIResponse
}

type modelRouter struct {
  log       *logger.Logger
  store     redis.Store
  providers map[types.AIProvider]providerClient

  mu          sync.Mutex
  cooldowns   map[string]time.Time
  lastRequest time.Time

  now   func() time.Time
  sleep func(time.Duration)
}

func NewModelRouter(log *logger.Logger, store redis.Store, providers ...providerClient) ModelRouter {
  byProvider := make(map[types.AIProvider]providerClient, len(providers))
  for _, p := range providers {
    byProvider[p.Provider()] = p
  }
  return &modelRouter{
    log:       log.With("service", "ModelRouter"),
    store:     store,
    providers: byProvider,
    cooldowns: make(map[string]time.Time),
    now:       time.Now,
    sleep:     time.Sleep,
  }
}

func aiCacheKey(prompt string, task types.TaskType) string {
  sum := md5.Sum([]byte(prompt))
  return "ai:" + string(task) + ":" + hex.EncodeToString(sum[:])[:16]
}

func (r *modelRouter) Route(ctx context.Context, prompt string, task types.TaskType) types.AIResponse {
  if task == "" {
    task = types.TaskGeneral
  }

  cacheKey := aiCacheKey(prompt, task)
  var cached types.AIResponse
  if r.store.GetJSON(ctx, cacheKey, &cached) && cached.Success {
    r.log.Info("AI cache hit", "task", task)
    cached.FromCache = true
    return cached
  }

  candidates := modelsForTask(task)

  for retry := 0; ; retry++ {
    if ctx.Err() != nil {
      return types.AIResponse{Success: false, Error: ctx.Err().Error()}
    }

    available := r.availableModels(candidates)
    if len(available) == 0 {
      if retry >= routerMaxRetries {
        return types.AIResponse{
          Success: false,
          Error:   "All models are rate limited. Please try again in a few minutes.",
        }
      }
      wait := routerRetryBase * time.Duration(1<<retry)
      r.log.Warn("all models cooling down", "task", task, "wait", wait.String(), "retry", retry+1)
      r.sleep(wait)
      continue
    }

    sort.SliceStable(available, func(i, j int) bool {
      return available[i].Priority > available[j].Priority
    })
    if len(available) > modelsPerRound {
      available = available[:modelsPerRound]
    }

    for _, model := range available {
      r.throttle()

      r.log.Info("trying model", "provider", model.Provider, "model", model.Model, "task", task)
      result := r.callProvider(ctx, model, prompt)
      r.markRequest()

      if result.Success {
        r.log.Info("model succeeded", "provider", result.Provider, "model", result.Model, "responseTime", result.ResponseTime)
        if err := r.store.SetJSON(ctx, cacheKey, result, aiCacheTTL); err != nil {
          r.log.Warn("AI cache write failed", "error", err)
        }
        return result
      }

      if result.RateLimited {
        r.markCooldown(model, result.Cooldown)
      }
    }

    if retry >= routerMaxRetries {
      return types.AIResponse{
        Success: false,
        Error:   "Failed to generate response. All models exhausted. Please try again in a few minutes.",
      }
    }
    wait := routerRetryBase * time.Duration(1<<retry)
    r.log.Warn("candidate round failed", "task", task, "wait", wait.String(), "retry", retry+1)
    r.sleep(wait)
  }
}

func (r *modelRouter) callProvider(ctx context.Context, model types.ModelConfig, prompt string) types.AIResponse {
  provider, ok := r.providers[model.Provider]
  if !ok {
    return types.AIResponse{Success: false, Error: "unknown provider", Provider: model.Provider, Model: model.Model}
  }
  return provider.Generate(ctx, model.Model, prompt)
}

func (r *modelRouter) availableModels(models []types.ModelConfig) []types.ModelConfig {
  r.mu.Lock()
  defer r.mu.Unlock()

  now := r.now()
  out := make([]types.ModelConfig, 0, len(models))
  for _, m := range models {
    expiry, cooling := r.cooldowns[m.ID()]
    if cooling && now.After(expiry) {
      delete(r.cooldowns, m.ID())
      cooling = false
    }
    if !cooling {
      out = append(out, m)
    }
  }
  return out
}

func (r *modelRouter) markCooldown(model types.ModelConfig, d time.Duration) {
  if d <= 0 {
    d = quotaCooldown
  }
  r.mu.Lock()
  r.cooldowns[model.ID()] = r.now().Add(d)
  r.mu.Unlock()
  r.log.Warn("model cooling down", "model", model.ID(), "duration", d.String())
}

// throttle enforces the floor between consecutive upstream requests so
// bursts of fallback attempts do not hammer the free tiers.
func (r *modelRouter) throttle() {
  r.mu.Lock()
  elapsed := r.now().Sub(r.lastRequest)
  r.mu.Unlock()
  if elapsed < minRequestInterval {
    r.sleep(minRequestInterval - elapsed)
  }
}

func (r *modelRouter) markRequest() {
  r.mu.Lock()
  r.lastRequest = r.now()
  r.mu.Unlock()
}
