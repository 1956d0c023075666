package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skyventures/tasks-api/internal/config"
	"github.com/skyventures/tasks-api/internal/database"
	apierrors "github.com/skyventures/tasks-api/internal/errors"
	"github.com/skyventures/tasks-api/internal/handlers"
	"github.com/skyventures/tasks-api/internal/middleware"
	"github.com/skyventures/tasks-api/internal/repository"
	"github.com/skyventures/tasks-api/internal/services"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("Database ready")

	secret := []byte(cfg.Auth.JWTSecret)

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, secret, cfg.Auth.TokenTTL)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "SkyVentures Task API is running",
		})
	})

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Route not found")
	})

	// API routes
	api := r.Group("/api")
	{
		// User routes (public)
		user := api.Group("/user")
		{
			user.POST("/register", authHandler.Register)
			user.POST("/login", authHandler.Login)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(secret))
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:projectID", middleware.RequireProjectAccess(db), projectHandler.GetProject)
			projects.PUT("/:projectID", middleware.RequireProjectAccess(db), projectHandler.UpdateProject)
			// Owner-only match without the not-deleted filter: handled inside
			// the handler so re-deleting stays idempotent.
			projects.PUT("/:projectID/soft-delete", projectHandler.SoftDeleteProject)

			// Task routes (project-scoped). Item routes validate both path
			// references before the project lookup touches the store.
			tasks := projects.Group("/:projectID/tasks")
			{
				tasks.POST("", middleware.RequireProjectAccess(db), taskHandler.CreateTask)
				tasks.GET("", middleware.RequireProjectAccess(db), taskHandler.ListTasks)
				tasks.PUT("/bulk-update", middleware.RequireProjectAccess(db), taskHandler.BulkUpdateTasksStatus)
				tasks.GET("/:taskID", middleware.ValidateTaskID(), middleware.RequireProjectAccess(db), taskHandler.GetTask)
				tasks.PUT("/:taskID", middleware.ValidateTaskID(), middleware.RequireProjectAccess(db), taskHandler.UpdateTask)
				tasks.PUT("/:taskID/soft-delete", middleware.ValidateTaskID(), middleware.RequireProjectAccess(db), taskHandler.SoftDeleteTask)
			}
		}
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("Server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
