// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/goalguard/backend/internal/integration/entrypoint/controller"
	"github.com/goalguard/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
	authController   *controller.AuthController
	userController   *controller.UserController
	goalController   *controller.GoalController
	taskController   *controller.TaskController
	drawController   *controller.DrawController
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	goalController *controller.GoalController,
	taskController *controller.TaskController,
	drawController *controller.DrawController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController: healthController,
		authController:   authController,
		userController:   userController,
		goalController:   goalController,
		taskController:   taskController,
		drawController:   drawController,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// User routes (require authentication)
		if r.userController != nil && r.authMiddleware != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.GetProfile)
				users.PUT("/me/tier", r.userController.UpdateTier)
			}
		}

		// Goal routes (require authentication)
		if r.goalController != nil && r.authMiddleware != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.ListGoals)
				goals.POST("", r.goalController.CreateGoal)
				goals.GET("/:id", r.goalController.GetGoal)
				goals.POST("/:id/contributions", r.goalController.Contribute)
				goals.POST("/:id/withdrawals", r.goalController.Withdraw)
				goals.GET("/:id/transactions", r.goalController.ListTransactions)
			}

			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.goalController.ListUserTransactions)
			}
		}

		// Task routes (require authentication)
		if r.taskController != nil && r.authMiddleware != nil {
			tasks := v1.Group("/tasks")
			tasks.Use(r.authMiddleware.Authenticate())
			{
				tasks.GET("", r.taskController.ListTasks)
				tasks.GET("/me", r.taskController.ListUserTasks)
				tasks.POST("/:id/start", r.taskController.StartTask)
				tasks.POST("/:id/submit", r.taskController.SubmitTask)
			}
		}

		// Draw routes (require authentication)
		if r.drawController != nil && r.authMiddleware != nil {
			draws := v1.Group("/draws")
			draws.Use(r.authMiddleware.Authenticate())
			{
				draws.GET("", r.drawController.ListDraws)
				draws.GET("/:id/entries", r.drawController.GetEntries)
			}
		}

		// Admin routes (require authentication)
		if r.taskController != nil && r.drawController != nil && r.authMiddleware != nil {
			admin := v1.Group("/admin")
			admin.Use(r.authMiddleware.Authenticate())
			{
				admin.POST("/tasks", r.taskController.CreateTask)
				admin.POST("/completions/:id/review", r.taskController.ReviewTask)
				admin.POST("/draws", r.drawController.CreateDraw)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
