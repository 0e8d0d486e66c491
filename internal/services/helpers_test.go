package services

import (
  "context"
  "encoding/json"
  "sync"
  "time"

  "go.uber.org/zap"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

func testLogger() *logger.Logger {
  return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// memStore is an in-memory redis.Store stand-in. incErr, when set, makes
// Increment fail so store-outage paths can be exercised.
type memStore struct {
  mu     sync.Mutex
  data   map[string][]byte
  counts map[string]int64
  incErr error
}

func newMemStore() *memStore {
  return &memStore{
    data:   make(map[string][]byte),
    counts: make(map[string]int64),
  }
}

func (m *memStore) GetJSON(ctx context.Context, key string, dest any) bool {
  if ctx.Err() != nil {
    return false
  }
  m.mu.Lock()
  raw, ok := m.data[key]
  m.mu.Unlock()
  if !ok {
    return false
  }
  return json.Unmarshal(raw, dest) == nil
}

func (m *memStore) SetJSON(ctx context.Context, key string, value any, _ time.Duration) error {
  if err := ctx.Err(); err != nil {
    return err
  }
  raw, err := json.Marshal(value)
  if err != nil {
    return err
  }
  m.mu.Lock()
  m.data[key] = raw
  m.mu.Unlock()
  return nil
}

func (m *memStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
  if err := ctx.Err(); err != nil {
    return 0, 0, err
  }
  m.mu.Lock()
  defer m.mu.Unlock()
  if m.incErr != nil {
    return 0, 0, m.incErr
  }
  m.counts[key]++
  return m.counts[key], window, nil
}

// fakeClock hands out a strictly advancing time so throttle floors are
// always satisfied without real sleeping.
type fakeClock struct {
  mu sync.Mutex
  t  time.Time
}

func newFakeClock() *fakeClock {
  return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
  c.mu.Lock()
  defer c.mu.Unlock()
  c.t = c.t.Add(time.Second)
  return c.t
}

// fakeProvider scripts Generate per model name and records every call.
type fakeProvider struct {
  provider types.AIProvider
  generate func(model, prompt string) types.AIResponse

  mu    sync.Mutex
  calls []string
}

func (p *fakeProvider) Provider() types.AIProvider { return p.provider }

func (p *fakeProvider) Generate(_ context.Context, model, prompt string) types.AIResponse {
  p.mu.Lock()
  p.calls = append(p.calls, model)
  p.mu.Unlock()
  return p.generate(model, prompt)
}

func (p *fakeProvider) callCount() int {
  p.mu.Lock()
  defer p.mu.Unlock()
  return len(p.calls)
}

func rateLimitedResponse(provider types.AIProvider, model string) types.AIResponse {
  return types.AIResponse{
    Success:     false,
    Error:       "Rate limit exceeded",
    Provider:    provider,
    Model:       model,
    RateLimited: true,
    Cooldown:    quotaCooldown,
  }
}

func successResponse(provider types.AIProvider, model, text string) types.AIResponse {
  return types.AIResponse{
    Success:  true,
    Text:     text,
    Provider: provider,
    Model:    model,
  }
}
