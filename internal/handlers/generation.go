package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/skillforged/skillforged-backend/internal/services"
  "github.com/skillforged/skillforged-backend/internal/types"
)

type GenerationHandler struct {
  svc     services.GenerationService
  limiter services.RateLimiter
}

func NewGenerationHandler(svc services.GenerationService, limiter services.RateLimiter) *GenerationHandler {
  return &GenerationHandler{svc: svc, limiter: limiter}
}

// POST /api/roadmaps/generate
func (h *GenerationHandler) Start(c *gin.Context) {
  limit := h.limiter.Check(c.Request.Context(), c.ClientIP())
  if !limit.Allowed {
    RespondError(c, http.StatusTooManyRequests, "rate_limited",
      fmt.Errorf("rate limit exceeded, please try again in %d seconds", int(limit.ResetIn.Seconds())))
    return
  }

  var input types.GenerationInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  jobID, err := h.svc.Start(c.Request.Context(), input)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "start_failed", err)
    return
  }

  c.JSON(http.StatusAccepted, gin.H{"success": true, "jobId": jobID})
}

// GET /api/roadmaps/generation/:jobId
func (h *GenerationHandler) Status(c *gin.Context) {
  jobID := c.Param("jobId")
  if jobID == "" {
    RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("missing job id"))
    return
  }

  job, err := h.svc.Status(c.Request.Context(), jobID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "not_found", err)
    return
  }
  RespondOK(c, job)
}
