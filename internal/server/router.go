package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/skillforged/skillforged-backend/internal/handlers"
  "github.com/skillforged/skillforged-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware    *middleware.AuthMiddleware
  GenerationHandler *handlers.GenerationHandler
  RoadmapHandler    *handlers.RoadmapHandler
  ExplainHandler    *handlers.ExplainHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)

  // ===============
  // || Protected ||
  // ===============
  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireAuth())
  // Generation
  api.POST("/roadmaps/generate", cfg.GenerationHandler.Start)
  api.GET("/roadmaps/generation/:jobId", cfg.GenerationHandler.Status)
  // Roadmaps
  api.GET("/roadmaps", cfg.RoadmapHandler.List)
  api.GET("/roadmaps/:id", cfg.RoadmapHandler.Get)
  api.DELETE("/roadmaps/:id", cfg.RoadmapHandler.Delete)
  api.PATCH("/roadmaps/:id/topics", cfg.RoadmapHandler.UpdateTopic)
  // Explanations
  api.POST("/topics/explain", cfg.ExplainHandler.Explain)

  return router
}
