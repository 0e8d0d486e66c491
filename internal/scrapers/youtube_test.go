package scrapers

import (
  "context"
  "fmt"
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"
)

func ytSearchPage(videos ...[2]string) string {
  items := make([]string, 0, len(videos))
  for _, v := range videos {
    items = append(items, fmt.Sprintf(
      `{"videoRenderer":{"videoId":%q,"title":{"runs":[{"text":%q}]}}}`, v[0], v[1]))
  }
  data := fmt.Sprintf(
    `{"contents":{"twoColumnSearchResultsRenderer":{"primaryContents":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[%s]}}]}}}}}`,
    strings.Join(items, ","))
  return fmt.Sprintf(`<html><body><script>var ytInitialData = %s;</script></body></html>`, data)
}

func TestYouTubeScrape(t *testing.T) {
  var gotQuery string
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    gotQuery = r.URL.Query().Get("search_query")
    fmt.Fprint(w, ytSearchPage(
      [2]string{"abc123", "Go Concurrency Patterns"},
      [2]string{"def456", "Go Channels Explained"},
      [2]string{"ghi789", "Go Generics Overview"},
    ))
  }))
  defer srv.Close()

  src := &YouTubeSource{log: testLogger(), client: srv.Client(), baseURL: srv.URL}
  got := src.Scrape(context.Background(), "Go Concurrency", 2)

  if gotQuery != "Go Concurrency tutorial" {
    t.Errorf("expected query %q, got %q", "Go Concurrency tutorial", gotQuery)
  }
  if len(got) != 2 {
    t.Fatalf("expected 2 videos (capped), got %d", len(got))
  }
  if got[0].Title != "Go Concurrency Patterns" {
    t.Errorf("unexpected title %q", got[0].Title)
  }
  if got[0].URL != "https://www.youtube.com/watch?v=abc123" {
    t.Errorf("unexpected url %q", got[0].URL)
  }
  if got[0].Thumbnail != "https://img.youtube.com/vi/abc123/mqdefault.jpg" {
    t.Errorf("unexpected thumbnail %q", got[0].Thumbnail)
  }
}

func TestYouTubeScrapeSkipsEntriesWithoutVideoID(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    fmt.Fprint(w, ytSearchPage(
      [2]string{"", "No ID"},
      [2]string{"real01", "Real Video"},
    ))
  }))
  defer srv.Close()

  src := &YouTubeSource{log: testLogger(), client: srv.Client(), baseURL: srv.URL}
  got := src.Scrape(context.Background(), "anything", 4)

  if len(got) != 1 || got[0].Title != "Real Video" {
    t.Fatalf("expected only the valid entry, got %+v", got)
  }
}

func TestYouTubeScrapeMissingDataBlob(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    fmt.Fprint(w, "<html><body>no embedded data</body></html>")
  }))
  defer srv.Close()

  src := &YouTubeSource{log: testLogger(), client: srv.Client(), baseURL: srv.URL}
  if got := src.Scrape(context.Background(), "anything", 4); got != nil {
    t.Fatalf("expected nil on missing blob, got %+v", got)
  }
}

func TestYouTubeScrapeServerError(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusTooManyRequests)
  }))
  defer srv.Close()

  src := &YouTubeSource{log: testLogger(), client: srv.Client(), baseURL: srv.URL}
  if got := src.Scrape(context.Background(), "anything", 4); got != nil {
    t.Fatalf("expected nil on server error, got %+v", got)
  }
}
