// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	_ "bayaaz/docs" // swagger docs
	"bayaaz/internal/cache"
	"bayaaz/internal/config"
	"bayaaz/internal/database"
	"bayaaz/internal/featureflags"
	"bayaaz/internal/middleware"
	"bayaaz/internal/models"
	"bayaaz/internal/notifications"
	"bayaaz/internal/repository"
	"bayaaz/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
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
	poemRepo       repository.PoemRepository
	bookmarkRepo   repository.BookmarkRepository
	followRepo     repository.FollowRepository
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	featureFlags   *featureflags.Manager
	feedService    *service.FeedService
	poemService    *service.PoemService
	userService    *service.UserService
	searchService  *service.SearchService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return newServer(cfg, db, redisClient), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	return newServer(cfg, db, redisClient), nil
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	poemRepo := repository.NewPoemRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := middleware.InitMetrics("bayaaz-api")

	flags := featureflags.NewManager(cfg.FeatureFlags)
	if cfg.FlagsFile != "" {
		fileFlags, err := featureflags.NewManagerFromFile(cfg.FlagsFile)
		if err != nil {
			log.Printf("failed to load flags file %s: %v", cfg.FlagsFile, err)
		} else {
			flags = fileFlags
		}
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		poemRepo:       poemRepo,
		bookmarkRepo:   bookmarkRepo,
		followRepo:     followRepo,
		featureFlags:   flags,
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	server.feedService = service.NewFeedService(poemRepo, bookmarkRepo, rng)
	server.poemService = service.NewPoemService(poemRepo, userRepo, server.isAdminByUserID, server.onPoemPublished)
	server.userService = service.NewUserService(userRepo)
	server.searchService = service.NewSearchService(poemRepo, flags)

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub()
	}

	return server
}

// onPoemPublished fans a publication event out to the poet's followers.
// Delivery is best effort; a broken notification path never fails the publish.
func (s *Server) onPoemPublished(ctx context.Context, poem *models.Poem) {
	if s.notifier == nil {
		return
	}
	followerIDs, err := s.followRepo.FollowerIDsOfPoet(ctx, poem.PoetID)
	if err != nil {
		log.Printf("load followers for poet %d: %v", poem.PoetID, err)
		return
	}
	if err := s.notifier.PublishPoemPublished(ctx, poem, followerIDs); err != nil {
		log.Printf("publish poem %d event: %v", poem.ID, err)
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Bayaaz Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.AuthRequired(), s.Refresh)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public poem routes (browse/search/feed)
	publicPoems := api.Group("/poems")
	publicPoems.Get("/", s.ListPoems)
	publicPoems.Get("/feed", s.GetFeed)
	publicPoems.Get("/search", middleware.RateLimit(
		s.redis, 20, time.Minute, "search"), s.SearchPoems)
	// Registered before the slug wildcard so it is not shadowed by /:lang/:slug.
	publicPoems.Get("/drafts/me", s.AuthRequired(), s.GetMyDrafts)
	publicPoems.Get("/:lang/:slug", s.GetPoemBySlug)
	publicPoems.Get("/:id", s.GetPoem)

	// Public poet routes
	poets := api.Group("/poets")
	poets.Get("/", s.ListPoets)
	poets.Get("/:slug/poems", s.GetPoetPoems)
	poets.Get("/:slug", s.GetPoetBySlug)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Post("/me/become-poet", s.BecomePoet)
	users.Post("/:id/promote-admin", s.AdminRequired(), s.PromoteToAdmin)
	users.Post("/:id/demote-admin", s.AdminRequired(), s.DemoteFromAdmin)

	// WebSocket ticket issuance
	api.Post("/ws/ticket", s.AuthRequired(), s.IssueWSTicket)

	// Protected poem routes
	poems := protected.Group("/poems")
	poems.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_poem"), s.CreatePoem)
	// Define specific /:id/:action routes BEFORE generic /:id route
	poems.Post("/:id/publish", s.PublishPoem)
	poems.Post("/:id/unpublish", s.UnpublishPoem)
	poems.Put("/:id", s.UpdatePoem)
	poems.Delete("/:id", s.DeletePoem)

	// Bookmark routes
	bookmarks := protected.Group("/bookmarks")
	bookmarks.Get("/", s.GetMyBookmarks)
	bookmarks.Post("/:poemId", s.AddBookmark)
	bookmarks.Delete("/:poemId", s.RemoveBookmark)

	// Follow routes
	follows := protected.Group("/follows")
	follows.Get("/", s.GetMyFollowing)
	follows.Post("/:poetId", middleware.RateLimit(
		s.redis, 30, 5*time.Minute, "follow"), s.FollowPoet)
	follows.Delete("/:poetId", s.UnfollowPoet)

	// Websocket endpoint - protected by AuthRequired
	ws := api.Group("/ws", s.AuthRequired())
	ws.Get("/", s.WebsocketHandler())

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/feature-flags", s.GetFeatureFlags)
	admin.Get("/drafts", s.GetAllDrafts)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
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

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdmin(c, userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		isWSPath := strings.HasPrefix(path, "/api/ws")

		// 1. Try WebSocket ticket first (short-lived, single-use)
		ticket := c.Query("ticket")
		if ticket != "" && s.redis != nil {
			key := fmt.Sprintf("ws_ticket:%s", ticket)
			userIDStr, err := s.redis.GetDel(c.Context(), key).Result()
			if err == nil {
				userID, parseErr := strconv.ParseUint(userIDStr, 10, 32)
				if parseErr == nil {
					c.Locals("userID", uint(userID))
					ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
					c.SetUserContext(ctx)
					return c.Next()
				}
			}
			// A ticket was provided but is invalid/expired; fail hard on WS paths.
			if isWSPath {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Invalid or expired WebSocket ticket"))
			}
		}

		// 2. Fall back to JWT via Bearer token
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
				if err == nil && isBlacklisted > 0 {
					return models.RespondWithError(c, fiber.StatusUnauthorized,
						models.NewUnauthorizedError("Token has been revoked"))
				}
			}
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID attempts to extract userID from context locals or the
// Authorization header but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	if id, ok := c.Locals("userID").(uint); ok && id != 0 {
		return id, true
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	tokenString := parts[1]
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Bayaaz Poetry API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.StartNotifications()

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// StartNotifications wires the WebSocket hub to the Redis subscriber.
// No-op when Redis is unavailable.
func (s *Server) StartNotifications() {
	if s.notifier == nil || s.hub == nil {
		return
	}
	if s.shutdownCtx == nil {
		s.shutdownCtx, s.shutdownFn = context.WithCancel(context.Background())
	}
	go func() {
		if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
			log.Printf("failed to start %s wiring: %v", s.hub.Name(), err)
		}
	}()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", s.hub.Name(), err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
