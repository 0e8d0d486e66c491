package services

import (
  "context"
  "fmt"
  "net/http"
  "net/http/httptest"
  "sync/atomic"
  "testing"
  "time"

  "github.com/skillforged/skillforged-backend/internal/types"
)

func newTestGemini(srv *httptest.Server) *geminiClient {
  return &geminiClient{
    log:        testLogger(),
    baseURL:    srv.URL,
    apiKey:     "test-key",
    httpClient: srv.Client(),
    sleep:      func(time.Duration) {},
  }
}

func newTestOpenRouter(srv *httptest.Server) *openRouterClient {
  return &openRouterClient{
    log:        testLogger(),
    baseURL:    srv.URL,
    apiKey:     "test-key",
    referer:    "http://localhost:3000",
    httpClient: srv.Client(),
    sleep:      func(time.Duration) {},
  }
}

func TestGeminiGenerateSuccess(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if r.URL.Query().Get("key") != "test-key" {
      t.Errorf("missing api key in query: %s", r.URL.String())
    }
    fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"{\"answer\":42}"}]}}]}`)
  }))
  defer srv.Close()

  got := newTestGemini(srv).Generate(context.Background(), "gemini-2.0-flash-lite", "hello")
  if !got.Success {
    t.Fatalf("expected success, got %+v", got)
  }
  if got.Text != `{"answer":42}` {
    t.Errorf("unexpected text %q", got.Text)
  }
  if got.Provider != types.ProviderGemini || got.Model != "gemini-2.0-flash-lite" {
    t.Errorf("attribution wrong: %+v", got)
  }
}

func TestGeminiGenerateQuotaNoRetry(t *testing.T) {
  var calls int32
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&calls, 1)
    w.WriteHeader(http.StatusTooManyRequests)
    fmt.Fprint(w, `{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`)
  }))
  defer srv.Close()

  got := newTestGemini(srv).Generate(context.Background(), "gemini-2.0-flash-lite", "hello")
  if got.Success || !got.RateLimited {
    t.Fatalf("expected rate limited failure, got %+v", got)
  }
  if got.Cooldown != quotaCooldown {
    t.Errorf("expected %v cooldown, got %v", quotaCooldown, got.Cooldown)
  }
  // quota errors must not burn the retry budget
  if atomic.LoadInt32(&calls) != 1 {
    t.Errorf("expected 1 upstream call, got %d", calls)
  }
}

func TestGeminiGenerateRetriesTransientErrors(t *testing.T) {
  var calls int32
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if atomic.AddInt32(&calls, 1) < 3 {
      w.WriteHeader(http.StatusInternalServerError)
      fmt.Fprint(w, `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`)
      return
    }
    fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"recovered"}]}}]}`)
  }))
  defer srv.Close()

  got := newTestGemini(srv).Generate(context.Background(), "gemini-2.0-flash", "hello")
  if !got.Success || got.Text != "recovered" {
    t.Fatalf("expected recovery on third attempt, got %+v", got)
  }
  if atomic.LoadInt32(&calls) != 3 {
    t.Errorf("expected 3 upstream calls, got %d", calls)
  }
}

func TestGeminiGenerateEmptyCandidates(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    fmt.Fprint(w, `{"candidates":[]}`)
  }))
  defer srv.Close()

  got := newTestGemini(srv).Generate(context.Background(), "gemini-2.0-flash-lite", "hello")
  if got.Success {
    t.Fatalf("expected failure on empty candidates, got %+v", got)
  }
  if got.RateLimited {
    t.Error("empty response is not a quota condition")
  }
}

func TestOpenRouterGenerateSuccess(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if r.Header.Get("Authorization") != "Bearer test-key" {
      t.Errorf("missing bearer token")
    }
    if r.Header.Get("HTTP-Referer") == "" || r.Header.Get("X-Title") == "" {
      t.Errorf("missing attribution headers")
    }
    fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"free model says hi"}}]}`)
  }))
  defer srv.Close()

  got := newTestOpenRouter(srv).Generate(context.Background(), "mistralai/mistral-7b-instruct:free", "hello")
  if !got.Success || got.Text != "free model says hi" {
    t.Fatalf("expected success, got %+v", got)
  }
  if got.Provider != types.ProviderOpenRouter {
    t.Errorf("attribution wrong: %+v", got)
  }
}

func TestOpenRouterPerDayQuotaCooldown(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusTooManyRequests)
    fmt.Fprint(w, `{"error":{"message":"Rate limit exceeded: free-models-per-day"}}`)
  }))
  defer srv.Close()

  got := newTestOpenRouter(srv).Generate(context.Background(), "mistralai/mistral-7b-instruct:free", "hello")
  if got.Success || !got.RateLimited {
    t.Fatalf("expected rate limited failure, got %+v", got)
  }
  if got.Cooldown != perDayCooldown {
    t.Errorf("per-day quota should cool for %v, got %v", perDayCooldown, got.Cooldown)
  }
}

func TestOpenRouterPerMinuteQuotaCooldown(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusTooManyRequests)
    fmt.Fprint(w, `{"error":{"message":"Rate limit exceeded: free-models-per-min"}}`)
  }))
  defer srv.Close()

  got := newTestOpenRouter(srv).Generate(context.Background(), "mistralai/mistral-7b-instruct:free", "hello")
  if got.Success || !got.RateLimited {
    t.Fatalf("expected rate limited failure, got %+v", got)
  }
  if got.Cooldown != quotaCooldown {
    t.Errorf("per-minute quota should cool for %v, got %v", quotaCooldown, got.Cooldown)
  }
}

func TestOpenRouterUnknownModelLongCooldown(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusBadRequest)
    fmt.Fprint(w, `{"error":{"message":"mistralai/gone is not a valid model ID"}}`)
  }))
  defer srv.Close()

  got := newTestOpenRouter(srv).Generate(context.Background(), "mistralai/gone", "hello")
  if got.Success || !got.RateLimited {
    t.Fatalf("expected unavailable-model failure, got %+v", got)
  }
  if got.Cooldown != unavailableCooldown {
    t.Errorf("unknown model should cool for %v, got %v", unavailableCooldown, got.Cooldown)
  }
  if got.Error != "Model unavailable" {
    t.Errorf("unexpected error %q", got.Error)
  }
}

func TestOpenRouterEmptyChoices(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    fmt.Fprint(w, `{"choices":[]}`)
  }))
  defer srv.Close()

  got := newTestOpenRouter(srv).Generate(context.Background(), "mistralai/mistral-7b-instruct:free", "hello")
  if got.Success {
    t.Fatalf("expected failure on empty choices, got %+v", got)
  }
}
