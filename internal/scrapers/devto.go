package scrapers

import (
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "net/url"
  "time"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

// DevToSource uses dev.to's public articles API rather than scraping
// markup; the tag search falls back to the weekly top list when the tag
// yields nothing.
type DevToSource struct {
  log     *logger.Logger
  client  *http.Client
  baseURL string
}

type devToArticle struct {
  Title      string `json:"title"`
  URL        string `json:"url"`
  CoverImage string `json:"cover_image"`
}

func NewDevToSource(log *logger.Logger) *DevToSource {
  return &DevToSource{
    log:     log.With("source", "Dev.to"),
    client:  newHTTPClient(8 * time.Second),
    baseURL: "https://dev.to",
  }
}

func (s *DevToSource) Name() string { return "Dev.to" }

func (s *DevToSource) Scrape(ctx context.Context, query string, maxResults int) []types.Resource {
  tagged := fmt.Sprintf("%s/api/articles?per_page=%d&tag=%s", s.baseURL, maxResults, url.QueryEscape(query))
  if out := s.fetchArticles(ctx, tagged, maxResults); len(out) > 0 {
    return out
  }
  top := fmt.Sprintf("%s/api/articles?per_page=%d&top=7", s.baseURL, maxResults)
  return s.fetchArticles(ctx, top, maxResults)
}

func (s *DevToSource) fetchArticles(ctx context.Context, apiURL string, maxResults int) []types.Resource {
  raw, err := fetchBody(ctx, s.client, apiURL)
  if err != nil {
    s.log.Debug("scrape failed", "error", err)
    return nil
  }

  var articles []devToArticle
  if err := json.Unmarshal(raw, &articles); err != nil {
    return nil
  }

  out := make([]types.Resource, 0, maxResults)
  for _, a := range articles {
    if len(out) >= maxResults {
      break
    }
    if a.Title == "" || a.URL == "" {
      continue
    }
    out = append(out, types.Resource{
      Title:     a.Title,
      URL:       a.URL,
      Type:      types.ResourceArticle,
      Source:    "Dev.to",
      Thumbnail: a.CoverImage,
    })
  }
  return out
}
