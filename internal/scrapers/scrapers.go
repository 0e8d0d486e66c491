package scrapers

import (
  "context"
  "fmt"
  "io"
  "net/http"
  "strings"
  "time"
  "unicode/utf8"

  "github.com/PuerkitoBio/goquery"

  "github.com/skillforged/skillforged-backend/internal/types"
)

// Browser user agent; several sources serve empty shells to unknown clients.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Source is one external site adapter. Scrape never fails loud: network
// errors, markup drift and empty result pages all degrade to an empty
// slice so a single broken source can never block the aggregate.
type Source interface {
  Name() string
  Scrape(ctx context.Context, query string, maxResults int) []types.Resource
}

func newHTTPClient(timeout time.Duration) *http.Client {
  return &http.Client{Timeout: timeout}
}

func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
  if err != nil {
    return nil, err
  }
  req.Header.Set("User-Agent", userAgent)

  resp, err := client.Do(req)
  if err != nil {
    return nil, err
  }
  defer resp.Body.Close()

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return nil, fmt.Errorf("http %d from %s", resp.StatusCode, url)
  }
  return io.ReadAll(resp.Body)
}

func fetchDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
  raw, err := fetchBody(ctx, client, url)
  if err != nil {
    return nil, err
  }
  return goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
}

// clip bounds scraped titles, which can run to whole paragraphs on some
// result pages. The cut backs up to a rune boundary so a multi-byte
// character is never split.
func clip(s string, n int) string {
  if len(s) <= n {
    return s
  }
  for n > 0 && !utf8.RuneStart(s[n]) {
    n--
  }
  return s[:n]
}
