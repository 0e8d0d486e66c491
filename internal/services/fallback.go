package services

import (
  "fmt"
  "math"
  "strings"

  "github.com/skillforged/skillforged-backend/internal/types"
)

var fallbackModuleTemplates = []struct {
  Title       string
  Description string
}{
  {"Fundamentals & Setup", "Core concepts and environment setup"},
  {"Core Concepts", "Essential knowledge and best practices"},
  {"Practical Application", "Real-world projects and exercises"},
  {"Advanced Topics", "Advanced patterns and optimization"},
  {"Professional Practice", "Professional tools and workflows"},
}

// FallbackStructure builds a template curriculum when every model is
// exhausted. Users always get a roadmap, just a generic one.
func FallbackStructure(input types.GenerationInput) types.Curriculum {
  weeksPerModule := int(math.Ceil(float64(input.WeeklyHours) / 2))
  if weeksPerModule < 1 {
    weeksPerModule = 1
  }
  totalWeeks := int(math.Ceil(52 * float64(input.WeeklyHours) / 10))
  if totalWeeks < 4 {
    totalWeeks = 4
  }
  moduleCount := int(math.Ceil(float64(totalWeeks) / float64(weeksPerModule)))
  if moduleCount < 3 {
    moduleCount = 3
  }
  if moduleCount > len(fallbackModuleTemplates) {
    moduleCount = len(fallbackModuleTemplates)
  }

  titleLower := strings.ToLower(input.Title)
  modules := make([]types.Module, 0, moduleCount)
  for i := 0; i < moduleCount; i++ {
    tpl := fallbackModuleTemplates[i]
    tplLower := strings.ToLower(tpl.Title)
    modules = append(modules, types.Module{
      ID:          fmt.Sprintf("mod-%d", i+1),
      Week:        i + 1,
      Title:       tpl.Title,
      Description: tpl.Description,
      Status:      types.ModuleNotStarted,
      Topics: []types.Topic{
        {
          ID:          fmt.Sprintf("t-%d-1", i),
          Title:       "Introduction to " + tpl.Title,
          Description: "Learn the fundamentals of " + tplLower,
        },
        {
          ID:          fmt.Sprintf("t-%d-2", i),
          Title:       tpl.Title + " in Practice",
          Description: "Apply " + tplLower + " to real scenarios",
        },
        {
          ID:          fmt.Sprintf("t-%d-3", i),
          Title:       "Best Practices and Patterns",
          Description: "Industry standards for " + titleLower,
        },
      },
    })
  }

  return types.Curriculum{
    Title:       input.Title,
    Description: fmt.Sprintf("A comprehensive %s-level learning path for %s", input.CurrentSkillLevel, input.Title),
    TotalWeeks:  totalWeeks,
    TotalHours:  totalWeeks * input.WeeklyHours,
    Prerequisites: []string{
      "Basic programming knowledge",
      "Problem-solving skills",
    },
    LearningOutcomes: []string{
      "Master fundamental concepts of " + input.Title,
      "Apply practical techniques in real projects",
      "Understand best practices and industry standards",
      "Build professional-level skills",
    },
    Modules: modules,
  }
}
