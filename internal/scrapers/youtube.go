package scrapers

import (
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "net/url"
  "regexp"
  "time"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

// YouTube search result pages embed their data as a ytInitialData JSON
// blob; no API key is needed to read it.
var ytInitialDataRe = regexp.MustCompile(`var ytInitialData = (.+?);</script>`)

type YouTubeSource struct {
  log     *logger.Logger
  client  *http.Client
  baseURL string
}

type ytSearchData struct {
  Contents struct {
    TwoColumnSearchResultsRenderer struct {
      PrimaryContents struct {
        SectionListRenderer struct {
          Contents []struct {
            ItemSectionRenderer struct {
              Contents []struct {
                VideoRenderer struct {
                  VideoID string `json:"videoId"`
                  Title   struct {
                    Runs []struct {
                      Text string `json:"text"`
                    } `json:"runs"`
                  } `json:"title"`
                } `json:"videoRenderer"`
              } `json:"contents"`
            } `json:"itemSectionRenderer"`
          } `json:"contents"`
        } `json:"sectionListRenderer"`
      } `json:"primaryContents"`
    } `json:"twoColumnSearchResultsRenderer"`
  } `json:"contents"`
}

func NewYouTubeSource(log *logger.Logger) *YouTubeSource {
  return &YouTubeSource{
    log:     log.With("source", "YouTube"),
    client:  newHTTPClient(10 * time.Second),
    baseURL: "https://www.youtube.com",
  }
}

func (s *YouTubeSource) Name() string { return "YouTube" }

func (s *YouTubeSource) Scrape(ctx context.Context, query string, maxResults int) []types.Resource {
  searchURL := fmt.Sprintf("%s/results?search_query=%s", s.baseURL, url.QueryEscape(query+" tutorial"))

  raw, err := fetchBody(ctx, s.client, searchURL)
  if err != nil {
    s.log.Debug("scrape failed", "error", err)
    return nil
  }

  m := ytInitialDataRe.FindSubmatch(raw)
  if m == nil {
    return nil
  }

  var data ytSearchData
  if err := json.Unmarshal(m[1], &data); err != nil {
    s.log.Debug("ytInitialData parse failed", "error", err)
    return nil
  }

  sections := data.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents
  if len(sections) == 0 {
    return nil
  }

  videos := make([]types.Resource, 0, maxResults)
  for _, item := range sections[0].ItemSectionRenderer.Contents {
    if len(videos) >= maxResults {
      break
    }
    vr := item.VideoRenderer
    if vr.VideoID == "" || len(vr.Title.Runs) == 0 || vr.Title.Runs[0].Text == "" {
      continue
    }
    videos = append(videos, types.Resource{
      Title:     clip(vr.Title.Runs[0].Text, 100),
      URL:       fmt.Sprintf("https://www.youtube.com/watch?v=%s", vr.VideoID),
      Type:      types.ResourceVideo,
      Source:    "YouTube",
      Thumbnail: fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", vr.VideoID),
    })
  }
  return videos
}
