package scrapers

import (
  "context"
  "encoding/json"
  "sync"
  "time"

  "go.uber.org/zap"

  "github.com/skillforged/skillforged-backend/internal/logger"
)

func testLogger() *logger.Logger {
  return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// memStore is an in-memory redis.Store stand-in.
type memStore struct {
  mu   sync.Mutex
  data map[string][]byte
}

func newMemStore() *memStore {
  return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) GetJSON(_ context.Context, key string, dest any) bool {
  m.mu.Lock()
  raw, ok := m.data[key]
  m.mu.Unlock()
  if !ok {
    return false
  }
  return json.Unmarshal(raw, dest) == nil
}

func (m *memStore) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
  raw, err := json.Marshal(value)
  if err != nil {
    return err
  }
  m.mu.Lock()
  m.data[key] = raw
  m.mu.Unlock()
  return nil
}

func (m *memStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
  m.mu.Lock()
  defer m.mu.Unlock()
  var count int64
  if raw, ok := m.data[key]; ok {
    _ = json.Unmarshal(raw, &count)
  }
  count++
  raw, _ := json.Marshal(count)
  m.data[key] = raw
  return count, window, nil
}
