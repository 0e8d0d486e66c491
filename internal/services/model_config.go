package services

import "github.com/skillforged/skillforged-backend/internal/types"

// Free-tier model pool. Gemini is the workhorse (15 RPM but reliable);
// the OpenRouter free models back it up when quota runs dry.
var (
  modelGeminiFlashLite = types.ModelConfig{
    Provider:  types.ProviderGemini,
    Model:     "gemini-2.0-flash-lite",
    Priority:  5,
    RateLimit: 15,
  }
  modelGeminiFlash = types.ModelConfig{
    Provider:  types.ProviderGemini,
    Model:     "gemini-2.0-flash",
    Priority:  4,
    RateLimit: 15,
  }
  modelMistral7B = types.ModelConfig{
    Provider:  types.ProviderOpenRouter,
    Model:     "mistralai/mistral-7b-instruct:free",
    Priority:  3,
    RateLimit: 30,
  }
  modelPhi35Mini = types.ModelConfig{
    Provider:  types.ProviderOpenRouter,
    Model:     "microsoft/phi-3.5-mini-instruct:free",
    Priority:  3,
    RateLimit: 30,
  }
)

var fallbackModels = []types.ModelConfig{
  modelGeminiFlash,
  modelMistral7B,
  modelPhi35Mini,
}

// modelsForTask maps a task to its candidate shortlist. Structure work
// leans on Gemini; explanations can run on the smallest models.
func modelsForTask(task types.TaskType) []types.ModelConfig {
  switch task {
  case types.TaskStructure:
    return []types.ModelConfig{modelGeminiFlashLite, modelGeminiFlash, modelMistral7B}
  case types.TaskResearch:
    return []types.ModelConfig{modelGeminiFlashLite, modelMistral7B, modelPhi35Mini}
  case types.TaskExplanation:
    return []types.ModelConfig{modelGeminiFlashLite, modelPhi35Mini}
  case types.TaskQuick:
    return []types.ModelConfig{modelGeminiFlashLite}
  default:
    return fallbackModels
  }
}
