package types

import "time"

type AIProvider string

const (
  ProviderGemini     AIProvider = "gemini"
  ProviderOpenRouter AIProvider = "openrouter"
)

// ModelConfig describes one routable model. Priority orders candidates
// inside the router (higher first).
type ModelConfig struct {
  Provider AIProvider `json:"provider"`
  Model    string     `json:"model"`
  Priority int        `json:"priority"`
  // RateLimit is the provider's advertised requests-per-minute. Kept
  // for operator visibility; the router learns real limits from 429s.
  RateLimit int `json:"rateLimit"`
}

func (m ModelConfig) ID() string {
  return string(m.Provider) + ":" + m.Model
}

// TaskType selects which model shortlist the router tries.
type TaskType string

const (
  TaskStructure   TaskType = "structure"
  TaskResearch    TaskType = "research"
  TaskExplanation TaskType = "explanation"
  TaskQuick       TaskType = "quick"
  TaskGeneral     TaskType = "general"
)

// AIResponse is the uniform result of a model call, failed or not.
// Transport and quota failures surface here rather than as Go errors so
// the router can keep walking the fallback chain.
type AIResponse struct {
  Success      bool       `json:"success"`
  Text         string     `json:"text,omitempty"`
  Error        string     `json:"error,omitempty"`
  Provider     AIProvider `json:"provider,omitempty"`
  Model        string     `json:"model,omitempty"`
  ResponseTime int64      `json:"responseTime,omitempty"`
  FromCache    bool       `json:"fromCache,omitempty"`

  // RateLimited marks quota-class failures; Cooldown is how long the
  // model should sit out. Router-internal, never serialized.
  RateLimited bool          `json:"-"`
  Cooldown    time.Duration `json:"-"`
}
