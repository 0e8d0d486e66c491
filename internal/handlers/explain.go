package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/skillforged/skillforged-backend/internal/services"
  "github.com/skillforged/skillforged-backend/internal/types"
)

type ExplainHandler struct {
  svc     services.ExplainService
  limiter services.RateLimiter
}

func NewExplainHandler(svc services.ExplainService, limiter services.RateLimiter) *ExplainHandler {
  return &ExplainHandler{svc: svc, limiter: limiter}
}

type explainRequest struct {
  Topic      string           `json:"topic" binding:"required"`
  Context    string           `json:"context"`
  SkillLevel types.SkillLevel `json:"skillLevel" binding:"required,oneof=beginner intermediate advanced"`
}

// POST /api/topics/explain
func (h *ExplainHandler) Explain(c *gin.Context) {
  limit := h.limiter.Check(c.Request.Context(), c.ClientIP())
  if !limit.Allowed {
    RespondError(c, http.StatusTooManyRequests, "rate_limited",
      fmt.Errorf("rate limit exceeded, try again in %d seconds", int(limit.ResetIn.Seconds())))
    return
  }

  var req explainRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  explanation, err := h.svc.Explain(c.Request.Context(), req.Topic, req.Context, req.SkillLevel)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "explain_failed", err)
    return
  }
  RespondOK(c, gin.H{"explanation": explanation})
}
