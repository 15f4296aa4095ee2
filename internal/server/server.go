// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"travelbuddy/internal/cache"
	"travelbuddy/internal/config"
	"travelbuddy/internal/database"
	"travelbuddy/internal/middleware"
	"travelbuddy/internal/models"
	"travelbuddy/internal/repository"
	"travelbuddy/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
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

	userRepo   repository.UserRepository
	blogRepo   repository.BlogRepository
	buddyRepo  repository.BuddyRepository
	tripRepo   repository.TripRepository
	reviewRepo repository.ReviewRepository
	chatRepo   repository.ChatRepository
	groupRepo  repository.GroupRepository

	buddyService       *service.BuddyService
	tripService        *service.TripService
	reviewService      *service.ReviewService
	chatService        *service.ChatService
	destinationService *service.DestinationService
	hotelService       *service.HotelService
	mailer             service.Mailer
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and optionally
// performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	buddyRepo := repository.NewBuddyRepository(db)
	tripRepo := repository.NewTripRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	chatRepo := repository.NewChatRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	prom := middleware.InitMetrics("travelbuddy-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		blogRepo:       blogRepo,
		buddyRepo:      buddyRepo,
		tripRepo:       tripRepo,
		reviewRepo:     reviewRepo,
		chatRepo:       chatRepo,
		groupRepo:      groupRepo,
	}

	server.mailer = service.NewMailer(cfg)
	server.buddyService = service.NewBuddyService(buddyRepo, userRepo, blogRepo)
	server.tripService = service.NewTripService(tripRepo, userRepo, reviewRepo, server.mailer)
	server.reviewService = service.NewReviewService(reviewRepo, tripRepo)
	server.chatService = service.NewChatService(chatRepo, buddyRepo)
	server.destinationService = service.NewDestinationService(cfg.GeminiAPIKey)
	server.hotelService = service.NewHotelService(cfg.HotelAPIBase, cfg.RapidAPIKey, cfg.RapidAPIHost)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Span per request, propagated from incoming headers
	app.Use(middleware.TracingMiddleware())

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
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
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
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "TravelBuddy Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/signin", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "signin"), s.Signin)
	auth.Post("/logout", s.Logout)

	// Public blog routes (optional auth resolves per-user like/wishlist flags)
	publicBlogs := api.Group("/blogs")
	publicBlogs.Get("/", s.GetBlogs)
	publicBlogs.Get("/:id", s.GetBlog)

	// Public trip browse (optional auth resolves isParticipant)
	api.Get("/trips", s.GetTrips)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Profile routes
	profile := protected.Group("/profile")
	profile.Get("/", s.GetProfile)
	profile.Patch("/", s.UpdateProfile)
	profile.Patch("/password", s.ChangePassword)
	profile.Get("/trips", s.GetCompletedTrips)

	// Protected blog routes
	blogs := protected.Group("/blogs")
	blogs.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_blog"), s.CreateBlog)
	blogs.Post("/:id/like", s.ToggleLike)
	blogs.Post("/:id/wishlist", s.ToggleWishlist)
	blogs.Delete("/:id", s.DeleteBlog)

	protected.Get("/wishlist", s.GetWishlist)

	// Buddy routes. Specific /matchmaking and /requests routes before the
	// bare collection route.
	buddies := protected.Group("/buddies")
	buddies.Get("/matchmaking", s.GetMatchmaking)
	buddies.Post("/requests", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "buddy_request"), s.SendBuddyRequest)
	buddies.Get("/requests/pending", s.GetPendingBuddyRequests)
	buddies.Patch("/requests/:id", s.RespondToBuddyRequest)
	buddies.Get("/", s.GetBuddies)

	// Trip routes
	trips := protected.Group("/trips")
	trips.Post("/", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_trip"), s.CreateTrip)
	trips.Get("/my", s.GetMyTrips)
	trips.Post("/:id/join", s.JoinTrip)
	trips.Patch("/:id/status", s.UpdateTripStatus)
	trips.Post("/:id/todos", s.AddTodo)
	trips.Get("/:id", s.GetTrip)

	todos := protected.Group("/todos")
	todos.Patch("/:id", s.UpdateTodo)
	todos.Delete("/:id", s.DeleteTodo)

	// Review routes
	protected.Post("/reviews", s.SubmitReview)

	// Chat routes
	chats := protected.Group("/chats")
	chats.Post("/", s.CreateChat)
	chats.Get("/", s.GetChats)
	chats.Get("/:id/messages", s.GetChatMessages)
	chats.Post("/:id/messages", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_message"), s.SendChatMessage)

	protected.Get("/chat-buddies", s.GetChatBuddies)

	// Community group routes (premium gating on create/post)
	groups := protected.Group("/groups")
	groups.Get("/", s.GetGroups)
	groups.Post("/", s.CreateGroup)
	groups.Get("/:id/posts", s.GetGroupPosts)
	groups.Post("/:id/posts", s.CreateGroupPost)
	groups.Get("/:id", s.GetGroup)

	// External integrations
	protected.Get("/destinations/random", middleware.RateLimit(
		s.redis, 10, time.Minute, "destination"), s.GetRandomDestination)
	protected.Get("/hotels/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "hotel_search"), s.SearchHotels)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	adminUsers := admin.Group("/users")
	adminUsers.Get("/", s.AdminListUsers)
	adminUsers.Patch("/:id", s.AdminTogglePremium)
	adminUsers.Delete("/:id", s.AdminDeleteUser)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
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
		// Redis is considered required for full readiness in this app
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "TravelBuddy",
		"version": "1.0.0",
		"status":  overallStatus,
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

		admin, err := s.isAdminByUserID(c.Context(), userID)
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
		tokenString := s.extractToken(c)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		// Parse and validate token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Extract claims
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		// Validate issuer and audience
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "travelbuddy-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "travelbuddy-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		// Extract user ID from subject claim
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

		// Store user ID in context
		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// extractToken pulls the JWT from the Authorization header, falling back to
// the auth cookie set at signin.
func (s *Server) extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(authCookieName)
}

// optionalUserID attempts to extract userID from the request but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	tokenString := s.extractToken(c)
	if tokenString == "" {
		return 0, false
	}

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
	app := fiber.New(fiber.Config{
		AppName: "TravelBuddy API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
