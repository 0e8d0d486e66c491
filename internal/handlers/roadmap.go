package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/skillforged/skillforged-backend/internal/services"
)

type RoadmapHandler struct {
  svc services.RoadmapService
}

func NewRoadmapHandler(svc services.RoadmapService) *RoadmapHandler {
  return &RoadmapHandler{svc: svc}
}

// GET /api/roadmaps
func (h *RoadmapHandler) List(c *gin.Context) {
  roadmaps, err := h.svc.List(c.Request.Context(), nil)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "list_failed", err)
    return
  }
  RespondOK(c, gin.H{"roadmaps": roadmaps})
}

// GET /api/roadmaps/:id
func (h *RoadmapHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap id"})
    return
  }

  roadmap, err := h.svc.Get(c.Request.Context(), nil, id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "not_found", err)
    return
  }
  RespondOK(c, gin.H{"roadmap": roadmap})
}

// DELETE /api/roadmaps/:id
func (h *RoadmapHandler) Delete(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap id"})
    return
  }

  if err := h.svc.Delete(c.Request.Context(), nil, id); err != nil {
    RespondError(c, http.StatusNotFound, "not_found", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

type updateTopicRequest struct {
  TopicID   string `json:"topicId" binding:"required"`
  Completed *bool  `json:"completed" binding:"required"`
}

// PATCH /api/roadmaps/:id/topics
func (h *RoadmapHandler) UpdateTopic(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap id"})
    return
  }

  var req updateTopicRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  roadmap, err := h.svc.UpdateTopicCompletion(c.Request.Context(), nil, id, req.TopicID, *req.Completed)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_failed", err)
    return
  }
  RespondOK(c, gin.H{"roadmap": roadmap})
}
