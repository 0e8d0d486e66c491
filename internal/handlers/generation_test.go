package handlers

import (
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/skillforged/skillforged-backend/internal/services"
  "github.com/skillforged/skillforged-backend/internal/types"
)

func init() {
  gin.SetMode(gin.TestMode)
}

type fakeGenerationService struct {
  startID  string
  startErr error
  job      *types.Job
}

func (f *fakeGenerationService) Start(_ context.Context, _ types.GenerationInput) (string, error) {
  return f.startID, f.startErr
}

func (f *fakeGenerationService) Status(_ context.Context, _ string) (*types.Job, error) {
  if f.job == nil {
    return nil, fmt.Errorf("job not found")
  }
  return f.job, nil
}

type fakeLimiter struct {
  allowed bool
}

func (f *fakeLimiter) Check(context.Context, string) services.RateLimitResult {
  return services.RateLimitResult{Allowed: f.allowed, ResetIn: 30 * time.Second}
}

func generationRouter(h *GenerationHandler) *gin.Engine {
  r := gin.New()
  r.POST("/api/roadmaps/generate", h.Start)
  r.GET("/api/roadmaps/generation/:jobId", h.Status)
  return r
}

func validGenerationBody() string {
  return `{"title":"Go Backend Development","currentSkillLevel":"beginner","targetGoal":"Build production HTTP services","weeklyHours":5}`
}

func TestGenerationStartAccepted(t *testing.T) {
  h := NewGenerationHandler(&fakeGenerationService{startID: "job-1"}, &fakeLimiter{allowed: true})
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodPost, "/api/roadmaps/generate", strings.NewReader(validGenerationBody()))
  req.Header.Set("Content-Type", "application/json")

  generationRouter(h).ServeHTTP(w, req)

  if w.Code != http.StatusAccepted {
    t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
  }
  var body map[string]any
  if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
    t.Fatalf("decode body: %v", err)
  }
  if body["success"] != true {
    t.Errorf("expected success flag in body, got %v", body)
  }
  if body["jobId"] != "job-1" {
    t.Errorf("expected job id in body, got %v", body)
  }
}

func TestGenerationStartRateLimited(t *testing.T) {
  h := NewGenerationHandler(&fakeGenerationService{startID: "job-1"}, &fakeLimiter{allowed: false})
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodPost, "/api/roadmaps/generate", strings.NewReader(validGenerationBody()))
  req.Header.Set("Content-Type", "application/json")

  generationRouter(h).ServeHTTP(w, req)

  if w.Code != http.StatusTooManyRequests {
    t.Fatalf("expected 429, got %d", w.Code)
  }
  var envelope ErrorEnvelope
  if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
    t.Fatalf("decode body: %v", err)
  }
  if envelope.Error.Code != "rate_limited" {
    t.Errorf("expected rate_limited code, got %+v", envelope)
  }
}

func TestGenerationStartValidation(t *testing.T) {
  cases := []struct {
    name string
    body string
  }{
    {"missing title", `{"currentSkillLevel":"beginner","targetGoal":"A goal long enough to pass","weeklyHours":5}`},
    {"bad skill level", `{"title":"Go","currentSkillLevel":"expert","targetGoal":"A goal long enough to pass","weeklyHours":5}`},
    {"goal too short", `{"title":"Go Basics","currentSkillLevel":"beginner","targetGoal":"short","weeklyHours":5}`},
    {"hours out of range", `{"title":"Go Basics","currentSkillLevel":"beginner","targetGoal":"A goal long enough to pass","weeklyHours":100}`},
  }
  h := NewGenerationHandler(&fakeGenerationService{startID: "job-1"}, &fakeLimiter{allowed: true})
  router := generationRouter(h)

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      w := httptest.NewRecorder()
      req := httptest.NewRequest(http.MethodPost, "/api/roadmaps/generate", strings.NewReader(tc.body))
      req.Header.Set("Content-Type", "application/json")
      router.ServeHTTP(w, req)
      if w.Code != http.StatusBadRequest {
        t.Errorf("expected 400, got %d", w.Code)
      }
    })
  }
}

func TestGenerationStatusFound(t *testing.T) {
  h := NewGenerationHandler(&fakeGenerationService{
    job: &types.Job{ID: "job-1", Status: types.JobGenerating, Progress: 45},
  }, &fakeLimiter{allowed: true})
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/api/roadmaps/generation/job-1", nil)

  generationRouter(h).ServeHTTP(w, req)

  if w.Code != http.StatusOK {
    t.Fatalf("expected 200, got %d", w.Code)
  }
  var job types.Job
  if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
    t.Fatalf("decode body: %v", err)
  }
  if job.Status != types.JobGenerating || job.Progress != 45 {
    t.Errorf("got %+v", job)
  }
}

func TestGenerationStatusUnknown(t *testing.T) {
  h := NewGenerationHandler(&fakeGenerationService{}, &fakeLimiter{allowed: true})
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/api/roadmaps/generation/missing", nil)

  generationRouter(h).ServeHTTP(w, req)

  if w.Code != http.StatusNotFound {
    t.Fatalf("expected 404, got %d", w.Code)
  }
}
