package services

import (
  "fmt"

  "github.com/skillforged/skillforged-backend/internal/types"
)

func structurePrompt(input types.GenerationInput) string {
  return fmt.Sprintf(`
Act as an expert Senior Curriculum Architect.
Create a detailed learning path for: "%s"
Target Goal: "%s"
Level: %s
Weekly Time: %d hours

Generate a JSON structure for the roadmap.

Important Guidelines:
1. Break down into logical Modules (Weeks).
2. Each Module must have a title, specific learning outcome, and 3-5 sub-topics.
3. Do NOT generate resources (links/videos) in this step. We will research them later.
4. Focus on logical progression and conceptual depth.

STRICT JSON OUTPUT RULES:
- Return RAW JSON only.
- Do NOT use markdown code blocks.
- Ensure all strings are properly escaped.

JSON Schema:
{
  "title": "Strong, engaging title",
  "description": "Inspiring overview",
  "totalWeeks": number,
  "totalHours": number,
  "prerequisites": ["list of concepts"],
  "learningOutcomes": ["list of skills"],
  "modules": [
    {
      "id": "mod-1",
      "week": 1,
      "title": "Module Title",
      "description": "What they will learn",
      "topics": [
        { "id": "t-1", "title": "Topic Name", "description": "Concept detail" }
      ]
    }
  ]
}
`, input.Title, input.TargetGoal, input.CurrentSkillLevel, input.WeeklyHours)
}

func explainPrompt(topic, learningContext string, skillLevel types.SkillLevel) string {
  return fmt.Sprintf(`You are a friendly and patient tutor. Explain the following topic to a %s learner.

**Topic:** %s
**Learning Context:** %s

Provide a clear, concise explanation that:
1. Breaks down complex concepts into simple terms
2. Uses practical examples and analogies
3. Includes code examples if relevant (formatted in markdown)
4. Suggests next steps for deeper understanding

Keep the explanation focused and under 500 words.`, skillLevel, topic, learningContext)
}
