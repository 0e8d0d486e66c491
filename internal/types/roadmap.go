package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Roadmap is the persisted curriculum document. The module tree is kept
// as a JSON column so the row stays a single document, matching how the
// client consumes it.
type Roadmap struct {
  ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            string         `gorm:"index;not null" json:"userId"`
  Title             string         `gorm:"not null" json:"title"`
  Description       string         `gorm:"not null" json:"description"`
  CurrentSkillLevel SkillLevel     `gorm:"not null" json:"currentSkillLevel"`
  TargetGoal        string         `gorm:"not null" json:"targetGoal"`
  WeeklyHours       int            `gorm:"not null" json:"weeklyHours"`
  TotalWeeks        int            `gorm:"not null" json:"totalWeeks"`
  TotalHours        int            `gorm:"not null" json:"totalHours"`
  Modules           datatypes.JSON `json:"modules"`
  Prerequisites     datatypes.JSON `json:"prerequisites"`
  LearningOutcomes  datatypes.JSON `json:"learningOutcomes"`
  Progress          int            `gorm:"default:0" json:"progress"`
  CreatedAt         time.Time      `json:"createdAt"`
  UpdatedAt         time.Time      `json:"updatedAt"`
}
