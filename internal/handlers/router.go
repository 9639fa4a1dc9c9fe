package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/yukikurage/project-board-api/internal/constants"
	"github.com/yukikurage/project-board-api/internal/middleware"
	"github.com/yukikurage/project-board-api/internal/oauth"
	"github.com/yukikurage/project-board-api/internal/services"
	"github.com/yukikurage/project-board-api/internal/session"
	"go.uber.org/zap"
)

// Services bundles the business services the router exposes.
type Services struct {
	Auth     *services.AuthService
	Identity *services.IdentityService
	Projects *services.ProjectService
	Tasks    *services.TaskService
	Users    *services.UserService
}

// RouterConfig carries the infrastructure the router is wired with.
// Provider and LoginLimiter may be nil. With no TrustedProxies, forwarding
// headers are ignored and the client IP is the connection's remote address.
type RouterConfig struct {
	Logger         *zap.Logger
	SessionStore   sessions.Store
	Serializer     *session.Serializer
	FrontendURL    string
	Provider       oauth.Provider
	LoginLimiter   *limiter.Limiter
	TrustedProxies []string
}

// NewRouter builds the HTTP routes.
func NewRouter(cfg RouterConfig, svc Services) (*gin.Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	if cfg.FrontendURL != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, cfg.SessionStore))

	authHandler := NewAuthHandler(svc.Auth, cfg.Serializer)
	oauthHandler := NewOAuthHandler(cfg.Provider, svc.Identity, cfg.Serializer, cfg.FrontendURL)
	projectHandler := NewProjectHandler(svc.Projects)
	taskHandler := NewTaskHandler(svc.Tasks)
	userHandler := NewUserHandler(svc.Users)

	var throttle gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.LoginLimiter != nil {
		throttle = middleware.RateLimit(cfg.LoginLimiter)
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Board API is running",
		})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", throttle, authHandler.Register)
		auth.POST("/login", throttle, authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.GetCurrentUser)
		auth.GET("/google", oauthHandler.Begin)
		auth.GET("/google/callback", oauthHandler.Callback)
	}

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(cfg.Serializer))
	{
		api.POST("/users", userHandler.CreateUser)
		api.POST("/users/:id/points", userHandler.AddPoints)

		projects := api.Group("/projects")
		{
			loadProject := middleware.LoadProject(svc.Projects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", loadProject, projectHandler.GetProject)
			projects.GET("/:id/members", loadProject, projectHandler.ListMembers)
			projects.POST("/:id/members", loadProject, projectHandler.AddMember)
			projects.GET("/:id/progress", loadProject, projectHandler.GetProgress)
			projects.GET("/:id/tasks", loadProject, taskHandler.ListProjectTasks)
			projects.POST("/:id/tasks/generate", loadProject, taskHandler.GenerateTasks)
		}

		tasks := api.Group("/tasks")
		{
			loadTask := middleware.LoadTask(svc.Tasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", loadTask, taskHandler.GetTask)
			tasks.PATCH("/:id/status", loadTask, taskHandler.UpdateStatus)
			tasks.PATCH("/:id/assign", loadTask, taskHandler.AssignTask)
		}
	}

	return r, nil
}
