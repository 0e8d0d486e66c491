package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/skillforged/skillforged-backend/internal/clients/redis"
  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

const explainCacheTTL = 2 * time.Hour

// ExplainService produces tutor-style explanations of a single topic,
// cached per topic and skill level.
type ExplainService interface {
  Explain(ctx context.Context, topic, learningContext string, skillLevel types.SkillLevel) (string, error)
}

type explainService struct {
  log    *logger.Logger
  store  redis.Store
  router ModelRouter
}

func NewExplainService(log *logger.Logger, store redis.Store, router ModelRouter) ExplainService {
  return &explainService{
    log:    log.With("service", "ExplainService"),
    store:  store,
    router: router,
  }
}

func explainCacheKey(topic string, skillLevel types.SkillLevel) string {
  slug := strings.ToLower(strings.Join(strings.Fields(topic), "-"))
  return fmt.Sprintf("explain:%s-%s", slug, skillLevel)
}

func (s *explainService) Explain(ctx context.Context, topic, learningContext string, skillLevel types.SkillLevel) (string, error) {
  if strings.TrimSpace(topic) == "" {
    return "", fmt.Errorf("missing topic")
  }

  cacheKey := explainCacheKey(topic, skillLevel)
  var cached string
  if s.store.GetJSON(ctx, cacheKey, &cached) && cached != "" {
    return cached, nil
  }

  response := s.router.Route(ctx, explainPrompt(topic, learningContext, skillLevel), types.TaskExplanation)
  if !response.Success || response.Text == "" {
    if response.Error != "" {
      return "", fmt.Errorf("%s", response.Error)
    }
    return "", fmt.Errorf("failed to explain topic")
  }

  if err := s.store.SetJSON(ctx, cacheKey, response.Text, explainCacheTTL); err != nil {
    s.log.Warn("explain cache write failed", "error", err)
  }
  return response.Text, nil
}
