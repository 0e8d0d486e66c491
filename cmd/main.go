package main

import (
  "fmt"
  "os"

  "github.com/joho/godotenv"

  "github.com/skillforged/skillforged-backend/internal/clients/redis"
  "github.com/skillforged/skillforged-backend/internal/db"
  "github.com/skillforged/skillforged-backend/internal/handlers"
  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/middleware"
  "github.com/skillforged/skillforged-backend/internal/repos"
  "github.com/skillforged/skillforged-backend/internal/scrapers"
  "github.com/skillforged/skillforged-backend/internal/server"
  "github.com/skillforged/skillforged-backend/internal/services"
  "github.com/skillforged/skillforged-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis
  log.Info("Setting up Redis store from main...")
  store, err := redis.NewStore(log)
  if err != nil {
    log.Error("Redis init failed", "error", err)
    os.Exit(1)
  }

  // Repos
  log.Info("Setting up Repos from main...")
  roadmapRepo := repos.NewRoadmapRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  jobStore := services.NewJobStore(log, store)
  rateLimiter := services.NewRateLimiter(log, store)
  router := services.NewModelRouter(log, store,
    services.NewGeminiClient(log),
    services.NewOpenRouterClient(log),
  )
  gatherer := scrapers.NewGatherer(log, store)
  roadmapService := services.NewRoadmapService(thePG, log, roadmapRepo)
  generationService := services.NewGenerationService(log, jobStore, router, gatherer, roadmapService)
  explainService := services.NewExplainService(log, store, router)

  // Handlers
  log.Info("Setting up handlers from main...")
  generationHandler := handlers.NewGenerationHandler(generationService, rateLimiter)
  roadmapHandler := handlers.NewRoadmapHandler(roadmapService)
  explainHandler := handlers.NewExplainHandler(explainService, rateLimiter)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log)

  // Router
  log.Info("Setting up router from main...")
  engine := server.NewRouter(server.RouterConfig{
    AuthMiddleware:    authMiddleware,
    GenerationHandler: generationHandler,
    RoadmapHandler:    roadmapHandler,
    ExplainHandler:    explainHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := engine.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
