package scrapers

import (
  "context"
  "fmt"
  "net/http"
  "net/url"
  "strings"
  "time"

  "github.com/PuerkitoBio/goquery"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

// htmlSource is the shared shape of the selector-based adapters: one
// search URL template, one result-link selector, and a per-site resolve
// step that filters and absolutizes hrefs. Each instance owns its own
// client and timeout so a stalled site only costs itself.
type htmlSource struct {
  log          *logger.Logger
  client       *http.Client
  name         string
  resourceType types.ResourceType
  baseURL      string
  searchPath   func(query string) string
  selector     string
  resolve      func(baseURL, href string) (string, bool)
  // fallback, when set, supplies curated results if the scrape comes
  // back empty (site markup drifts constantly)
  fallback func(query string, maxResults int) []types.Resource
}

func (s *htmlSource) Name() string { return s.name }

func (s *htmlSource) Scrape(ctx context.Context, query string, maxResults int) []types.Resource {
  doc, err := fetchDocument(ctx, s.client, s.baseURL+s.searchPath(query))
  if err != nil {
    s.log.Debug("scrape failed", "error", err)
    if s.fallback != nil {
      return s.fallback(query, maxResults)
    }
    return nil
  }

  out := make([]types.Resource, 0, maxResults)
  doc.Find(s.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
    if len(out) >= maxResults {
      return false
    }
    href, _ := sel.Attr("href")
    title := strings.TrimSpace(sel.Text())
    if href == "" || title == "" {
      return true
    }
    fullURL, ok := s.resolve(s.baseURL, href)
    if !ok {
      return true
    }
    out = append(out, types.Resource{
      Title:  clip(title, 100),
      URL:    fullURL,
      Type:   s.resourceType,
      Source: s.name,
    })
    return true
  })

  if len(out) == 0 && s.fallback != nil {
    return s.fallback(query, maxResults)
  }
  return out
}

// resolveWithin accepts only links that stay on (or point back to) the
// given host fragment, passing absolute URLs through untouched.
func resolveWithin(host string) func(string, string) (string, bool) {
  return func(baseURL, href string) (string, bool) {
    if strings.HasPrefix(href, "http") {
      if host != "" && !strings.Contains(href, host) {
        return "", false
      }
      return href, true
    }
    return baseURL + href, true
  }
}

func NewGeeksForGeeksSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "GeeksforGeeks"),
    client:       newHTTPClient(10 * time.Second),
    name:         "GeeksforGeeks",
    resourceType: types.ResourceArticle,
    baseURL:      "https://www.geeksforgeeks.org",
    searchPath: func(query string) string {
      slug := strings.ToLower(strings.Join(strings.Fields(query), "-"))
      return "/search/" + url.PathEscape(slug) + "/"
    },
    selector: "article a, .head a, .entry-title a",
    resolve: func(_ string, href string) (string, bool) {
      if !strings.Contains(href, "geeksforgeeks.org") {
        return "", false
      }
      return href, true
    },
    fallback: func(query string, maxResults int) []types.Resource {
      if maxResults <= 0 {
        return nil
      }
      slug := strings.ToLower(strings.Join(strings.Fields(query), "-"))
      return []types.Resource{{
        Title:  query + " - GeeksforGeeks",
        URL:    "https://www.geeksforgeeks.org/" + slug + "/",
        Type:   types.ResourceArticle,
        Source: "GeeksforGeeks",
      }}
    },
  }
}

// Medium has no open search endpoint, so results come from DuckDuckGo's
// HTML frontend with a site: filter; result hrefs carry the real URL in
// the uddg redirect parameter.
func NewMediumSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "Medium"),
    client:       newHTTPClient(10 * time.Second),
    name:         "Medium",
    resourceType: types.ResourceArticle,
    baseURL:      "https://html.duckduckgo.com",
    searchPath: func(query string) string {
      return "/html/?q=" + url.QueryEscape("site:medium.com "+query)
    },
    selector: ".result__a",
    resolve: func(_ string, href string) (string, bool) {
      if !strings.Contains(href, "medium.com") {
        return "", false
      }
      if parsed, err := url.Parse(href); err == nil {
        if actual := parsed.Query().Get("uddg"); actual != "" {
          return actual, true
        }
      }
      return href, true
    },
  }
}

func NewFreeCodeCampSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "freeCodeCamp"),
    client:       newHTTPClient(10 * time.Second),
    name:         "freeCodeCamp",
    resourceType: types.ResourceArticle,
    baseURL:      "https://www.freecodecamp.org",
    searchPath: func(query string) string {
      return "/news/search/?query=" + url.QueryEscape(query)
    },
    selector: "article a.post-card-title, .post-card a",
    resolve:  resolveWithin(""),
  }
}

func NewStackOverflowSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "StackOverflow"),
    client:       newHTTPClient(10 * time.Second),
    name:         "Stack Overflow",
    resourceType: types.ResourceArticle,
    baseURL:      "https://stackoverflow.com",
    searchPath: func(query string) string {
      return "/search?q=" + url.QueryEscape(query) + "&tab=newest"
    },
    selector: "a.s-link",
    resolve: func(baseURL, href string) (string, bool) {
      if strings.Contains(href, "login") {
        return "", false
      }
      if strings.HasPrefix(href, "http") {
        return href, true
      }
      return baseURL + href, true
    },
  }
}

func NewGitHubSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "GitHub"),
    client:       newHTTPClient(10 * time.Second),
    name:         "GitHub",
    resourceType: types.ResourceProject,
    baseURL:      "https://github.com",
    searchPath: func(query string) string {
      return "/search?q=" + url.QueryEscape(query) + "&sort=stars&type=repositories"
    },
    selector: "a[data-testid='repository-name-heading']",
    resolve:  resolveWithin(""),
  }
}

func NewHashnodeSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "Hashnode"),
    client:       newHTTPClient(10 * time.Second),
    name:         "Hashnode",
    resourceType: types.ResourceArticle,
    baseURL:      "https://hashnode.com",
    searchPath: func(query string) string {
      return "/search?q=" + url.QueryEscape(query)
    },
    selector: "a[data-testid='blog-card-title-link']",
    resolve:  resolveWithin(""),
  }
}

func NewCSSTricksSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "CSS-Tricks"),
    client:       newHTTPClient(10 * time.Second),
    name:         "CSS-Tricks",
    resourceType: types.ResourceArticle,
    baseURL:      "https://css-tricks.com",
    searchPath: func(query string) string {
      return "/?s=" + url.QueryEscape(query)
    },
    selector: "article h2 a, .post-title a",
    resolve:  resolveWithin(""),
  }
}

func NewSmashingMagazineSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "SmashingMagazine"),
    client:       newHTTPClient(10 * time.Second),
    name:         "Smashing Magazine",
    resourceType: types.ResourceArticle,
    baseURL:      "https://www.smashingmagazine.com",
    searchPath: func(query string) string {
      return "/?s=" + url.QueryEscape(query)
    },
    selector: "article h2 a, .article-headline a",
    resolve:  resolveWithin(""),
  }
}

func NewUdemyFreeSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "Udemy"),
    client:       newHTTPClient(10 * time.Second),
    name:         "Udemy (Free)",
    resourceType: types.ResourceVideo,
    baseURL:      "https://www.udemy.com",
    searchPath: func(query string) string {
      return "/courses/search/?q=" + url.QueryEscape(query) + "&price=price-free"
    },
    selector: "a[data-testid='course-card-clickable']",
    resolve: func(baseURL, href string) (string, bool) {
      full := href
      if !strings.HasPrefix(href, "http") {
        full = baseURL + href
      }
      if !strings.Contains(full, "udemy.com") {
        return "", false
      }
      return full, true
    },
  }
}

func NewCourseraSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "Coursera"),
    client:       newHTTPClient(10 * time.Second),
    name:         "Coursera",
    resourceType: types.ResourceVideo,
    baseURL:      "https://www.coursera.org",
    searchPath: func(query string) string {
      return fmt.Sprintf("/search?query=%s&index=prod_all_launched_products", url.QueryEscape(query))
    },
    selector: "a[data-test='search-result-link']",
    resolve:  resolveWithin(""),
  }
}

func NewLinkedInLearningSource(log *logger.Logger) *htmlSource {
  return &htmlSource{
    log:          log.With("source", "LinkedInLearning"),
    client:       newHTTPClient(10 * time.Second),
    name:         "LinkedIn Learning",
    resourceType: types.ResourceVideo,
    baseURL:      "https://www.linkedin.com",
    searchPath: func(query string) string {
      return "/learning/search?keywords=" + url.QueryEscape(query)
    },
    selector: "a.course-card__link",
    resolve: func(baseURL, href string) (string, bool) {
      if strings.HasPrefix(href, "http") {
        return href, true
      }
      return baseURL + href, true
    },
  }
}
