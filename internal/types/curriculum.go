package types

import "time"

type ResourceType string

const (
  ResourceVideo         ResourceType = "video"
  ResourceArticle       ResourceType = "article"
  ResourceDocumentation ResourceType = "documentation"
  ResourceExercise      ResourceType = "exercise"
  ResourceProject       ResourceType = "project"
)

// Resource is one external learning asset discovered by a scraper source.
// Deduplicated by exact URL equality.
type Resource struct {
  Title     string       `json:"title"`
  URL       string       `json:"url"`
  Type      ResourceType `json:"type"`
  Source    string       `json:"source"`
  Thumbnail string       `json:"thumbnail,omitempty"`
}

type Topic struct {
  ID             string     `json:"id"`
  Title          string     `json:"title"`
  Description    string     `json:"description"`
  Resources      []Resource `json:"resources"`
  EstimatedHours float64    `json:"estimatedHours"`
  IsCompleted    bool       `json:"isCompleted"`
}

type ModuleStatus string

const (
  ModuleNotStarted ModuleStatus = "not_started"
  ModuleInProgress ModuleStatus = "in_progress"
  ModuleCompleted  ModuleStatus = "completed"
)

type RelatedLink struct {
  Title    string `json:"title"`
  URL      string `json:"url"`
  Category string `json:"category"`
}

// Module is one week-sized unit of a curriculum. Status is derived from
// topic completion, never set directly during generation.
type Module struct {
  ID           string        `json:"id"`
  Week         int           `json:"week"`
  Title        string        `json:"title"`
  Description  string        `json:"description"`
  Topics       []Topic       `json:"topics"`
  Status       ModuleStatus  `json:"status"`
  CompletedAt  *time.Time    `json:"completedAt,omitempty"`
  RelatedLinks []RelatedLink `json:"relatedLinks,omitempty"`
}

// Curriculum is the assembled generation result, owned by the worker
// until it is handed to persistence in one piece.
type Curriculum struct {
  Title            string   `json:"title"`
  Description      string   `json:"description"`
  TotalWeeks       int      `json:"totalWeeks"`
  TotalHours       int      `json:"totalHours"`
  Prerequisites    []string `json:"prerequisites"`
  LearningOutcomes []string `json:"learningOutcomes"`
  Modules          []Module `json:"modules"`
}
