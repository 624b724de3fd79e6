package http

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
)

// Middlewares bundles the boundary collaborators wired in at start-up.
type Middlewares struct {
	APIKey    gin.HandlerFunc
	RateLimit gin.HandlerFunc
	Metrics   gin.HandlerFunc
}

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	taskHandler *handlers.TaskHandler,
	mw Middlewares,
) {
	validation.RegisterTagNames()

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	if mw.Metrics != nil {
		api.Use(mw.Metrics)
	}

	api.GET("/health", healthHandler.CheckHealth)
	api.GET("/health/report", healthHandler.CheckHealthReport)

	tasks := api.Group("/tasks")
	if mw.APIKey != nil {
		tasks.Use(mw.APIKey)
	}
	if mw.RateLimit != nil {
		tasks.Use(mw.RateLimit)
	}
	tasks.Use(middleware.CharacterLimitMiddleware())
	{
		// Static routes before the parameterized ones.
		tasks.GET("/recent", taskHandler.ListRecentTasks)
		tasks.GET("/all", taskHandler.ListAllTasks)
		tasks.GET("/active", taskHandler.ListActiveTasks)
		tasks.GET("/completed", taskHandler.ListCompletedTasks)
		tasks.GET("/progress", taskHandler.GetProgress)

		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("", taskHandler.ListAllTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.PUT("/:id/mark-as-done", taskHandler.MarkAsDone)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}
}
