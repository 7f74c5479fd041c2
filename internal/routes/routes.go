package routes

import (
	"todo-list-api/internal/auth"
	"todo-list-api/internal/handlers"
	"todo-list-api/internal/middleware"
	"todo-list-api/internal/realtime"
	"todo-list-api/internal/todo"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Registry *todo.Registry
	Hub      *realtime.Hub
	// Auth protects the API when non-nil.
	Auth   *auth.Authenticator
	Logger *log.Logger
}

func SetupRoutes(deps Deps) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		status := "ok"
		if !deps.Registry.Ready() {
			status = "starting"
		}
		c.JSON(200, gin.H{
			"status":  status,
			"message": "Todo list API is running",
		})
	})

	h := handlers.New(deps.Registry, deps.Logger)

	api := ginRouter.Group("/api")
	if deps.Auth != nil {
		api.POST("/login", handlers.Login(deps.Auth))
	}

	protected := ginRouter.Group("")
	if deps.Auth != nil {
		protected.Use(middleware.JWTAuthMiddleware(deps.Auth))
	}
	if deps.Hub != nil {
		protected.GET("/ws", handlers.WebSocketHandler(deps.Hub, deps.Logger))
	}

	// Registry endpoints run one at a time
	apiRoutes := protected.Group("/api")
	apiRoutes.Use(middleware.Serialize())
	{
		apiRoutes.GET("/priorities", h.Priorities)
		apiRoutes.GET("/sections", h.GetSections)

		// Project endpoints
		apiRoutes.GET("/projects", h.GetProjects)
		apiRoutes.GET("/projects/default", h.GetDefaultProject)
		apiRoutes.GET("/projects/active", h.GetActiveProject)
		apiRoutes.GET("/projects/:id", h.GetProjectByID)
		apiRoutes.POST("/projects", h.CreateProject)
		apiRoutes.PUT("/projects/:id", h.UpdateProject)
		apiRoutes.DELETE("/projects/:id", h.DeleteProject)
		apiRoutes.POST("/projects/:id/activate", h.ActivateProject)
		apiRoutes.POST("/projects/:id/tasks", h.CreateTask)

		// Task endpoints
		apiRoutes.GET("/tasks", h.GetTasks)
		apiRoutes.GET("/tasks/today", h.GetTodaysTasks)
		apiRoutes.GET("/tasks/upcoming", h.GetUpcomingTasks)
		apiRoutes.GET("/tasks/:id", h.GetTaskByID)
		apiRoutes.PUT("/tasks/:id", h.UpdateTask)
		apiRoutes.PATCH("/tasks/:id/toggle", h.ToggleTask)
		apiRoutes.DELETE("/tasks/:id", h.DeleteTask)
	}

	return ginRouter
}
