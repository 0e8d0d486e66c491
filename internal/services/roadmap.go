package services

import (
  "context"
  "encoding/json"
  "fmt"
  "math"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/repos"
  "github.com/skillforged/skillforged-backend/internal/requestdata"
  "github.com/skillforged/skillforged-backend/internal/types"
)

type RoadmapService interface {
  SaveGenerated(ctx context.Context, tx *gorm.DB, userID string, input types.GenerationInput, curriculum types.Curriculum) (*types.Roadmap, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Roadmap, error)
  Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Roadmap, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
  UpdateTopicCompletion(ctx context.Context, tx *gorm.DB, id uuid.UUID, topicID string, completed bool) (*types.Roadmap, error)
}

type roadmapService struct {
  db          *gorm.DB
  log         *logger.Logger
  roadmapRepo repos.RoadmapRepo
  now         func() time.Time
}

func NewRoadmapService(db *gorm.DB, log *logger.Logger, roadmapRepo repos.RoadmapRepo) RoadmapService {
  return &roadmapService{
    db:          db,
    log:         log.With("service", "RoadmapService"),
    roadmapRepo: roadmapRepo,
    now:         time.Now,
  }
}

func (s *roadmapService) SaveGenerated(ctx context.Context, tx *gorm.DB, userID string, input types.GenerationInput, curriculum types.Curriculum) (*types.Roadmap, error) {
  if userID == "" {
    return nil, fmt.Errorf("missing user id")
  }

  modulesJSON, err := json.Marshal(curriculum.Modules)
  if err != nil {
    return nil, fmt.Errorf("failed to encode modules: %w", err)
  }
  prereqJSON, err := json.Marshal(orEmpty(curriculum.Prerequisites))
  if err != nil {
    return nil, fmt.Errorf("failed to encode prerequisites: %w", err)
  }
  outcomesJSON, err := json.Marshal(orEmpty(curriculum.LearningOutcomes))
  if err != nil {
    return nil, fmt.Errorf("failed to encode learning outcomes: %w", err)
  }

  roadmap := &types.Roadmap{
    ID:                uuid.New(),
    UserID:            userID,
    Title:             curriculum.Title,
    Description:       curriculum.Description,
    CurrentSkillLevel: input.CurrentSkillLevel,
    TargetGoal:        input.TargetGoal,
    WeeklyHours:       input.WeeklyHours,
    TotalWeeks:        curriculum.TotalWeeks,
    TotalHours:        curriculum.TotalHours,
    Modules:           datatypes.JSON(modulesJSON),
    Prerequisites:     datatypes.JSON(prereqJSON),
    LearningOutcomes:  datatypes.JSON(outcomesJSON),
    Progress:          0,
  }

  if _, err := s.roadmapRepo.Create(ctx, tx, []*types.Roadmap{roadmap}); err != nil {
    return nil, err
  }
  s.log.Info("roadmap saved", "roadmap_id", roadmap.ID, "user_id", userID, "modules", len(curriculum.Modules))
  return roadmap, nil
}

func (s *roadmapService) List(ctx context.Context, tx *gorm.DB) ([]*types.Roadmap, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, fmt.Errorf("not authenticated")
  }
  return s.roadmapRepo.GetByUserID(ctx, tx, rd.UserID)
}

func (s *roadmapService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Roadmap, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, fmt.Errorf("not authenticated")
  }
  if id == uuid.Nil {
    return nil, fmt.Errorf("missing roadmap id")
  }

  roadmap, err := s.roadmapRepo.GetByID(ctx, tx, id)
  if err != nil {
    return nil, err
  }
  if roadmap == nil || roadmap.UserID != rd.UserID {
    return nil, fmt.Errorf("roadmap not found")
  }
  return roadmap, nil
}

func (s *roadmapService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  roadmap, err := s.Get(ctx, tx, id)
  if err != nil {
    return err
  }
  return s.roadmapRepo.Delete(ctx, tx, roadmap.ID)
}

func (s *roadmapService) UpdateTopicCompletion(ctx context.Context, tx *gorm.DB, id uuid.UUID, topicID string, completed bool) (*types.Roadmap, error) {
  if topicID == "" {
    return nil, fmt.Errorf("missing topic id")
  }

  roadmap, err := s.Get(ctx, tx, id)
  if err != nil {
    return nil, err
  }

  var modules []types.Module
  if err := json.Unmarshal(roadmap.Modules, &modules); err != nil {
    return nil, fmt.Errorf("failed to decode modules: %w", err)
  }

  found := false
  for mi := range modules {
    for ti := range modules[mi].Topics {
      if modules[mi].Topics[ti].ID == topicID {
        modules[mi].Topics[ti].IsCompleted = completed
        found = true
      }
    }
  }
  if !found {
    return nil, fmt.Errorf("topic not found")
  }

  progress := deriveModuleState(modules, s.now)

  modulesJSON, err := json.Marshal(modules)
  if err != nil {
    return nil, fmt.Errorf("failed to encode modules: %w", err)
  }

  updates := map[string]interface{}{
    "modules":  datatypes.JSON(modulesJSON),
    "progress": progress,
  }
  if err := s.roadmapRepo.UpdateFields(ctx, tx, roadmap.ID, updates); err != nil {
    return nil, err
  }

  roadmap.Modules = datatypes.JSON(modulesJSON)
  roadmap.Progress = progress
  return roadmap, nil
}

// deriveModuleState recomputes each module's status from its topics and
// returns the overall completion percentage. A module flips to
// completed the first time all of its topics are done; the timestamp
// sticks even if a topic is later unchecked and redone.
func deriveModuleState(modules []types.Module, now func() time.Time) int {
  totalTopics := 0
  completedTopics := 0

  for mi := range modules {
    module := &modules[mi]
    completedInModule := 0
    for _, t := range module.Topics {
      totalTopics++
      if t.IsCompleted {
        completedTopics++
        completedInModule++
      }
    }

    switch {
    case completedInModule == 0:
      module.Status = types.ModuleNotStarted
    case completedInModule == len(module.Topics) && len(module.Topics) > 0:
      module.Status = types.ModuleCompleted
      if module.CompletedAt == nil {
        ts := now()
        module.CompletedAt = &ts
      }
    default:
      module.Status = types.ModuleInProgress
    }
  }

  if totalTopics == 0 {
    return 0
  }
  return int(math.Round(float64(completedTopics) / float64(totalTopics) * 100))
}

func orEmpty(s []string) []string {
  if s == nil {
    return []string{}
  }
  return s
}
