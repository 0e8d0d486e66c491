package services

import (
  "context"
  "fmt"
  "math"
  "time"

  "github.com/google/uuid"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/requestdata"
  "github.com/skillforged/skillforged-backend/internal/scrapers"
  "github.com/skillforged/skillforged-backend/internal/types"
)

const (
  maxJobLogs       = 50
  interModuleDelay = time.Second
  // upper bound on a single generation run; a wedged scrape or model
  // call fails the job instead of leaking the goroutine
  generationDeadline = 20 * time.Minute
)

// workerFailureMessage is the only error text a poller ever sees for a
// failed run; the real cause goes to the logs.
const workerFailureMessage = "An unexpected error occurred in the background process."

// GenerationService runs the full roadmap pipeline in the background:
// AI structure design, per-module resource scraping, then persistence.
// Callers get a job ID immediately and poll for progress.
type GenerationService interface {
  Start(ctx context.Context, input types.GenerationInput) (string, error)
  Status(ctx context.Context, jobID string) (*types.Job, error)
}

type generationService struct {
  log        *logger.Logger
  jobs       JobStore
  router     ModelRouter
  gatherer   scrapers.Gatherer
  roadmapSvc RoadmapService

  newJobID func() string
  now      func() time.Time
  sleep    func(time.Duration)
  // done, when set, is closed after the background worker finishes
  done chan struct{}
}

func NewGenerationService(log *logger.Logger, jobs JobStore, router ModelRouter, gatherer scrapers.Gatherer, roadmapSvc RoadmapService) GenerationService {
  return &generationService{
    log:        log.With("service", "GenerationService"),
    jobs:       jobs,
    router:     router,
    gatherer:   gatherer,
    roadmapSvc: roadmapSvc,
    newJobID:   uuid.NewString,
    now:        time.Now,
    sleep:      time.Sleep,
  }
}

func (s *generationService) Start(ctx context.Context, input types.GenerationInput) (string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return "", fmt.Errorf("not authenticated")
  }
  userID := rd.UserID

  jobID := s.newJobID()
  if err := s.jobs.Set(ctx, &types.Job{
    ID:       jobID,
    Status:   types.JobStarting,
    Progress: 5,
    Message:  "Initializing generation...",
  }); err != nil {
    return "", fmt.Errorf("failed to create job: %w", err)
  }

  go func() {
    bgCtx, cancel := context.WithTimeout(context.Background(), generationDeadline)
    defer cancel()
    defer func() {
      if r := recover(); r != nil {
        s.log.Error("generation worker panicked", "job_id", jobID, "panic", r)
        s.failJob(bgCtx, jobID, workerFailureMessage)
      }
      if s.done != nil {
        close(s.done)
      }
    }()

    if err := s.run(bgCtx, jobID, userID, input); err != nil {
      s.log.Error("generation failed", "job_id", jobID, "error", err)
      s.failJob(bgCtx, jobID, workerFailureMessage)
    }
  }()

  return jobID, nil
}

func (s *generationService) Status(ctx context.Context, jobID string) (*types.Job, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, fmt.Errorf("not authenticated")
  }
  job, ok := s.jobs.Get(ctx, jobID)
  if !ok {
    return nil, fmt.Errorf("job not found")
  }
  return job, nil
}

func (s *generationService) failJob(ctx context.Context, jobID, errMsg string) {
  // ctx is usually the worker context, which may already be past its
  // deadline; the terminal write has to land regardless or pollers
  // watch a stale status until the job key expires
  writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
  defer cancel()
  if err := s.jobs.Set(writeCtx, &types.Job{
    ID:       jobID,
    Status:   types.JobFailed,
    Progress: 0,
    Message:  "Generation failed",
    Error:    errMsg,
  }); err != nil {
    s.log.Error("failed to mark job failed", "job_id", jobID, "error", err)
  }
}

func (s *generationService) run(ctx context.Context, jobID, userID string, input types.GenerationInput) error {
  var logs []string
  addLog := func(msg string) {
    logs = append(logs, fmt.Sprintf("[%s] %s", s.now().Format("15:04:05"), msg))
    if len(logs) > maxJobLogs {
      logs = logs[len(logs)-maxJobLogs:]
    }
  }
  sync := func(status types.JobStatus, progress int, message string) {
    _ = s.jobs.Set(ctx, &types.Job{
      ID:       jobID,
      Status:   status,
      Progress: progress,
      Message:  message,
      Logs:     logs,
    })
  }

  addLog("Initializing background job...")
  sync(types.JobAnalyzing, 5, "Initializing...")

  addLog("Consulting AI Architect to design curriculum...")
  sync(types.JobAnalyzing, 10, "Designing your learning path...")

  curriculum := s.generateStructure(ctx, input)

  addLog("Curriculum Design Complete.")
  sync(types.JobStructuring, 20, "Curriculum designed. Beginning Deep Search...")

  totalModules := len(curriculum.Modules)
  for i := range curriculum.Modules {
    if ctx.Err() != nil {
      return fmt.Errorf("generation timed out")
    }
    mod := &curriculum.Modules[i]
    progressBase := int(math.Round(20 + float64(i)/float64(totalModules)*60))

    sync(types.JobGenerating, progressBase, fmt.Sprintf("Scraping Real Resources: Module %d/%d - %s...", i+1, totalModules, mod.Title))
    addLog(fmt.Sprintf("[Scraping Web] Module %d: %s", i+1, mod.Title))

    resourceData := s.gatherer.GatherForTopics(ctx, mod.Topics)

    resourceCount := 0
    for ti := range mod.Topics {
      topic := &mod.Topics[ti]
      for _, r := range resourceData {
        if r.TopicTitle == topic.Title {
          topic.Resources = normalizeResources(r.Resources)
          break
        }
      }
      topic.EstimatedHours = 2
      resourceCount += len(topic.Resources)
    }
    addLog(fmt.Sprintf("Module %d scraped %d real resources from web", i+1, resourceCount))

    mod.RelatedLinks = scrapers.RelatedLinks(mod.Title)
    addLog(fmt.Sprintf("Module %d enriched with %d related reference links", i+1, len(mod.RelatedLinks)))

    if i+1 < totalModules {
      addLog(fmt.Sprintf("Cooling down (%ds) before next module...", int(interModuleDelay.Seconds())))
      s.sleep(interModuleDelay)
    }
  }

  sync(types.JobSaving, 90, "Assembling final roadmap...")
  addLog("All modules researched. Saving to database...")

  roadmap, err := s.roadmapSvc.SaveGenerated(ctx, nil, userID, input, curriculum)
  if err != nil {
    return fmt.Errorf("failed to save roadmap: %w", err)
  }
  addLog("Roadmap Saved Successfully.")

  addLog("Mission Complete.")
  _ = s.jobs.Set(ctx, &types.Job{
    ID:        jobID,
    Status:    types.JobCompleted,
    Progress:  100,
    Message:   "Roadmap ready!",
    Logs:      logs,
    RoadmapID: roadmap.ID.String(),
  })
  return nil
}

// generateStructure asks the router for a curriculum skeleton and falls
// back to the template structure when models or parsing fail. A
// generation run never dies at this stage.
func (s *generationService) generateStructure(ctx context.Context, input types.GenerationInput) types.Curriculum {
  response := s.router.Route(ctx, structurePrompt(input), types.TaskStructure)
  if !response.Success || response.Text == "" {
    s.log.Warn("structure generation failed, using fallback", "error", response.Error)
    return FallbackStructure(input)
  }

  s.log.Info("structure generated", "provider", response.Provider, "model", response.Model, "responseTime", response.ResponseTime)

  var curriculum types.Curriculum
  if err := CleanAndParseJSON(response.Text, &curriculum); err != nil {
    s.log.Warn("structure parse failed, using fallback", "error", err)
    return FallbackStructure(input)
  }
  if len(curriculum.Modules) == 0 {
    s.log.Warn("structure had no modules, using fallback")
    return FallbackStructure(input)
  }
  return curriculum
}

func normalizeResources(resources []types.Resource) []types.Resource {
  for i := range resources {
    resources[i].Type = types.NormalizeResourceType(string(resources[i].Type))
  }
  return resources
}
