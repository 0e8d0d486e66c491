package types

// SkillLevel is the learner's self-reported starting point.
type SkillLevel string

const (
  SkillBeginner     SkillLevel = "beginner"
  SkillIntermediate SkillLevel = "intermediate"
  SkillAdvanced     SkillLevel = "advanced"
)

// GenerationInput is the immutable request that kicks off a roadmap
// generation job.
type GenerationInput struct {
  Title             string     `json:"title" binding:"required,min=3,max=100"`
  CurrentSkillLevel SkillLevel `json:"currentSkillLevel" binding:"required,oneof=beginner intermediate advanced"`
  TargetGoal        string     `json:"targetGoal" binding:"required,min=10,max=500"`
  WeeklyHours       int        `json:"weeklyHours" binding:"required,min=1,max=60"`
}

type JobStatus string

const (
  JobStarting    JobStatus = "starting"
  JobAnalyzing   JobStatus = "analyzing"
  JobGenerating  JobStatus = "generating"
  JobStructuring JobStatus = "structuring"
  JobSaving      JobStatus = "saving"
  JobCompleted   JobStatus = "completed"
  JobFailed      JobStatus = "failed"
)

// Job is the polled state of one generation run. It lives only in the
// cache store (1h TTL) and is written exclusively by the single worker
// goroutine that owns the job id.
type Job struct {
  ID        string    `json:"id"`
  Status    JobStatus `json:"status"`
  Progress  int       `json:"progress"`
  Message   string    `json:"message"`
  Logs      []string  `json:"logs,omitempty"`
  RoadmapID string    `json:"roadmapId,omitempty"`
  Error     string    `json:"error,omitempty"`
}

func (s JobStatus) Terminal() bool {
  return s == JobCompleted || s == JobFailed
}
