package scrapers

import (
  "context"
  "strings"
  "time"

  "golang.org/x/sync/errgroup"

  "github.com/skillforged/skillforged-backend/internal/clients/redis"
  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

const (
  resourceCacheTTL = 24 * time.Hour
  interTopicDelay  = 300 * time.Millisecond
)

// slot pairs a source with how many results to request and how many to
// keep. Requesting more than the keep cap leaves slack for dedupe.
type slot struct {
  source  Source
  request int
  keep    int
  // queryFn overrides the default query for sources whose search works
  // better on a narrower term
  queryFn func(topicTitle string) string
}

type TopicResources struct {
  TopicTitle string           `json:"topicTitle"`
  Resources  []types.Resource `json:"resources"`
}

// Gatherer fans a topic out to every registered source concurrently and
// merges the results under per-source caps.
type Gatherer interface {
  Gather(ctx context.Context, topicTitle string) []types.Resource
  GatherForTopics(ctx context.Context, topics []types.Topic) []TopicResources
}

type gatherer struct {
  log   *logger.Logger
  store redis.Store
  slots []slot
  sleep func(time.Duration)
}

// firstWord narrows a topic title for sources whose search works better
// on a single term. Titles come straight from model output, so blank
// ones pass through unchanged.
func firstWord(topicTitle string) string {
  fields := strings.Fields(topicTitle)
  if len(fields) == 0 {
    return topicTitle
  }
  return fields[0]
}

func NewGatherer(log *logger.Logger, store redis.Store) Gatherer {
  log = log.With("service", "ResourceGatherer")
  return &gatherer{
    log:   log,
    store: store,
    slots: []slot{
      {source: NewYouTubeSource(log), request: 4, keep: 4},
      {source: NewDevToSource(log), request: 3, keep: 2, queryFn: firstWord},
      {source: NewGeeksForGeeksSource(log), request: 3, keep: 2},
      {source: NewMediumSource(log), request: 2, keep: 2},
      {source: NewFreeCodeCampSource(log), request: 2, keep: 2},
      {source: NewStackOverflowSource(log), request: 2, keep: 2},
      {source: NewGitHubSource(log), request: 2, keep: 2},
      {source: NewHashnodeSource(log), request: 2, keep: 2},
      {source: NewCSSTricksSource(log), request: 1, keep: 1},
      {source: NewSmashingMagazineSource(log), request: 1, keep: 1},
      {source: NewUdemyFreeSource(log), request: 1, keep: 1},
      {source: NewCourseraSource(log), request: 1, keep: 1},
      {source: NewLinkedInLearningSource(log), request: 1, keep: 1},
    },
    sleep: time.Sleep,
  }
}

func resourceCacheKey(topicTitle string) string {
  slug := strings.ToLower(strings.Join(strings.Fields(topicTitle), "-"))
  if len(slug) > 50 {
    slug = slug[:50]
  }
  return "resources:" + slug
}

// Gather runs every source in parallel. A failing source contributes an
// empty slice; it never sinks the batch. Results keep a stable order:
// videos first, then official docs, then the article sources.
func (g *gatherer) Gather(ctx context.Context, topicTitle string) []types.Resource {
  cacheKey := resourceCacheKey(topicTitle)

  var cached []types.Resource
  if g.store.GetJSON(ctx, cacheKey, &cached) && len(cached) > 0 {
    g.log.Info("resource cache hit", "topic", topicTitle)
    return cached
  }

  g.log.Info("scraping resources", "topic", topicTitle)

  perSlot := make([][]types.Resource, len(g.slots))
  eg, egCtx := errgroup.WithContext(ctx)
  for i, s := range g.slots {
    eg.Go(func() error {
      query := topicTitle
      if s.queryFn != nil {
        query = s.queryFn(topicTitle)
      }
      perSlot[i] = s.source.Scrape(egCtx, query, s.request)
      return nil
    })
  }
  // Scrape never returns an error, so Wait only orders the goroutines.
  _ = eg.Wait()

  all := make([]types.Resource, 0, 24)
  appendCapped := func(rs []types.Resource, max int) {
    if len(rs) > max {
      rs = rs[:max]
    }
    all = append(all, rs...)
  }

  appendCapped(perSlot[0], g.slots[0].keep)
  appendCapped(OfficialDocs(topicTitle), 4)
  for i := 1; i < len(g.slots); i++ {
    appendCapped(perSlot[i], g.slots[i].keep)
  }

  unique := dedupeByURL(all)
  g.log.Info("resources gathered", "topic", topicTitle, "count", len(unique))

  if len(unique) > 0 {
    if err := g.store.SetJSON(ctx, cacheKey, unique, resourceCacheTTL); err != nil {
      g.log.Warn("resource cache write failed", "error", err)
    }
  }
  return unique
}

// GatherForTopics scrapes topics sequentially with a short pause between
// them so the upstream sites see a trickle rather than a burst.
func (g *gatherer) GatherForTopics(ctx context.Context, topics []types.Topic) []TopicResources {
  results := make([]TopicResources, 0, len(topics))
  for i, topic := range topics {
    results = append(results, TopicResources{
      TopicTitle: topic.Title,
      Resources:  g.Gather(ctx, topic.Title),
    })
    if i < len(topics)-1 {
      g.sleep(interTopicDelay)
    }
  }
  return results
}

func dedupeByURL(resources []types.Resource) []types.Resource {
  seen := make(map[string]struct{}, len(resources))
  out := make([]types.Resource, 0, len(resources))
  for _, r := range resources {
    if _, ok := seen[r.URL]; ok {
      continue
    }
    seen[r.URL] = struct{}{}
    out = append(out, r)
  }
  return out
}
