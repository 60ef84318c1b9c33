// Package server contains the HTTP and WebSocket handlers of the comunidad API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "comunidad/docs" // swagger docs
	"comunidad/internal/bootstrap"
	"comunidad/internal/config"
	"comunidad/internal/middleware"
	"comunidad/internal/models"
	"comunidad/internal/notifications"
	"comunidad/internal/repository"
	"comunidad/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	registerWindow     = 10 * time.Minute
	loginWindow        = 5 * time.Minute
	defaultGlobalLimit = 100
	defaultBodyLimit   = 1 * 1024 * 1024
	readinessTimeout   = 5 * time.Second
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	replyRepo      repository.ReplyRepository
	favoriteRepo   repository.FavoriteRepository
	taskRepo       repository.TaskRepository
	medicationRepo repository.MedicationRepository

	userService       *service.UserService
	postService       *service.PostService
	replyService      *service.ReplyService
	favoriteService   *service.FavoriteService
	taskService       *service.TaskService
	medicationService *service.MedicationService

	notifier *notifications.Notifier
	forumHub *notifications.ForumHub
}

// NewServer connects to the database and Redis and builds a server on top of them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedDemo: cfg.SeedDemo})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil: caching and rate limits are then skipped and forum
// events reach only this instance's websocket clients.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("comunidad-api"),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		replyRepo:      repository.NewReplyRepository(db),
		favoriteRepo:   repository.NewFavoriteRepository(db),
		taskRepo:       repository.NewTaskRepository(db),
		medicationRepo: repository.NewMedicationRepository(db),
		forumHub:       notifications.NewForumHub(),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.postService = service.NewPostService(server.postRepo)
	server.replyService = service.NewReplyService(server.replyRepo, server.postRepo)
	server.favoriteService = service.NewFavoriteService(server.favoriteRepo)
	server.taskService = service.NewTaskService(server.taskRepo, time.Local)
	server.medicationService = service.NewMedicationService(server.medicationRepo)

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Propagate request and trace IDs into the request context
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := strings.TrimSpace(s.config.AllowedOrigins)
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	globalMax := s.config.RequestsPerMinute
	if globalMax <= 0 {
		globalMax = defaultGlobalLimit
	}
	app.Use(limiter.New(limiter.Config{
		Max:        globalMax,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Users
	app.Get("/usuarios", s.GetUsers)
	app.Post("/register", middleware.RateLimit(s.redis, s.config.RegisterRateLimit, registerWindow, "register"), s.Register)
	app.Post("/login", middleware.RateLimit(s.redis, s.config.LoginRateLimit, loginWindow, "login"), s.Login)

	// Forum
	foro := app.Group("/foro/publicaciones")
	foro.Get("/", s.GetPosts)
	foro.Post("/", s.CreatePost)
	foro.Get("/:postId", s.GetPost)
	foro.Delete("/:postId", s.DeletePost)
	foro.Get("/:postId/respuestas", s.GetReplies)
	foro.Post("/:postId/respuestas", s.CreateReply)

	// Favorites
	app.Post("/favoritos", s.ToggleFavorite)
	app.Get("/favoritos/:userId", s.GetFavorites)

	// Tasks
	app.Post("/tareas", s.CreateTask)
	app.Get("/tareas/:userId", s.GetUpcomingTasks)
	app.Delete("/tareas/:taskId", s.DeleteTask)

	// Medications. The static toggle path is registered before /:medicationId.
	med := app.Group("/medicina")
	med.Post("/agregarEliminarFechaSuministro", s.ToggleSupplyDate)
	med.Post("/", s.CreateMedication)
	med.Get("/usuario/:userId", s.GetUserMedications)
	med.Get("/:medicationId", s.GetMedication)
	med.Delete("/:medicationId", s.DeleteMedication)

	// Realtime forum feed
	ws := app.Group("/ws")
	ws.Use(requireWebSocketUpgrade)
	ws.Get("/foro", s.ForumWebSocketHandler())
}

// NewApp builds a Fiber app with the full middleware stack and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "comunidad API",
		BodyLimit:             defaultBodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// handleError renders errors that escape handlers, including fiber's own
// routing errors such as 404 and 405.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return models.RespondWithError(c, fe.Code, fe)
	}
	return respondError(c, err)
}

// HealthCheck is an alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck pings the database and, when configured, Redis. A server
// running without Redis reports it as "disabled" and stays ready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start wires the forum hub to Redis and serves HTTP until Shutdown.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.NewApp()

	s.wireForumHub(s.shutdownCtx)

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// wireForumHub subscribes the forum hub to Redis until ctx is cancelled.
// Without the subscription, events published by this instance would never
// reach its own clients, so a failure falls back to local delivery.
func (s *Server) wireForumHub(ctx context.Context) {
	if !s.notifier.Enabled() {
		return
	}
	if err := s.forumHub.StartWiring(ctx, s.notifier); err != nil {
		middleware.Logger.Error("failed to start forum hub wiring",
			slog.String("hub", s.forumHub.Name()),
			slog.String("error", err.Error()),
		)
		s.notifier = nil
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := s.forumHub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down hub",
			slog.String("hub", s.forumHub.Name()),
			slog.String("error", err.Error()),
		)
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
