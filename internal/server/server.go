package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/yukikurage/microin-api/docs"
	"github.com/yukikurage/microin-api/internal/config"
	"github.com/yukikurage/microin-api/internal/handlers"
	"github.com/yukikurage/microin-api/internal/middleware"
	"github.com/yukikurage/microin-api/internal/services"
)

const (
	shutdownTimeout    = 5 * time.Second
	healthCheckTimeout = 2 * time.Second
)

// Pinger is a dependency the health check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

type Option func(*routerOptions)

type routerOptions struct {
	redis Pinger
}

// WithRedis reports the recommendation cache in /health
func WithRedis(redis Pinger) Option {
	return func(o *routerOptions) {
		o.redis = redis
	}
}

type Server struct {
	Engine *gin.Engine
	Config *config.Config
	logger *log.Logger
}

func New(cfg *config.Config, taskService *services.TaskService, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Engine: NewRouter(cfg, taskService, logger, opts...),
		Config: cfg,
		logger: logger,
	}
}

// NewRouter wires middleware and routes onto a fresh gin engine
func NewRouter(cfg *config.Config, taskService *services.TaskService, logger *log.Logger, opts ...Option) *gin.Engine {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	r.Use(middleware.CORS(cfg.CORSAllowOrigins))

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(taskService)
	recommendationHandler := handlers.NewRecommendationHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"message": "MICROIN API is running",
		}
		// Redis is optional; a failed ping does not fail the check
		if o.redis != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			err := o.redis.Ping(ctx)
			cancel()
			if err != nil {
				body["redis"] = "unavailable"
			} else {
				body["redis"] = "ok"
			}
		}
		c.JSON(http.StatusOK, body)
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/apply", taskHandler.ApplyToTask)
			tasks.POST("/:id/approve", taskHandler.ApproveTask)
		}

		api.GET("/users/:walletAddress", userHandler.GetUser)
		api.POST("/recommendations", recommendationHandler.Recommend)
	}

	return r
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens on the configured port until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.Port,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Server running on port %s", s.Config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Println("Server exited properly")
	return nil
}
