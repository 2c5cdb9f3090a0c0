// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "novelshelf/docs" // swagger docs
	"novelshelf/internal/bootstrap"
	"novelshelf/internal/cache"
	"novelshelf/internal/config"
	"novelshelf/internal/featureflags"
	"novelshelf/internal/middleware"
	"novelshelf/internal/models"
	"novelshelf/internal/repository"
	"novelshelf/internal/service"

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
	novelRepo      repository.NovelRepository
	submissionRepo repository.SubmissionRepository
	listRepo       repository.NovelListRepository
	reviewRepo     repository.ReviewRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	followRepo     repository.FollowRepository

	tagCache *cache.TagCache
	flags    *featureflags.Manager

	userService       *service.UserService
	novelService      *service.NovelService
	submissionService *service.SubmissionService
	listService       *service.ListService
	reviewService     *service.ReviewService
	postService       *service.PostService
	commentService    *service.CommentService
	followService     *service.FollowService
	mediaService      *service.MediaService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedStarterCatalog: true})
	if err != nil {
		return nil, err
	}

	mediaService, err := service.NewMediaService(cfg)
	if err != nil {
		return nil, fmt.Errorf("media service init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, mediaService)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mediaService *service.MediaService) (*Server, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	novelRepo := repository.NewNovelRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	listRepo := repository.NewNovelListRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("novelshelf-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		novelRepo:      novelRepo,
		submissionRepo: submissionRepo,
		listRepo:       listRepo,
		reviewRepo:     reviewRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		followRepo:     followRepo,
		mediaService:   mediaService,
		flags:          featureflags.NewManager(cfg.FeatureFlags),
	}

	server.tagCache = cache.NewTagCache(novelRepo.DistinctTags)
	server.userService = service.NewUserService(userRepo)
	server.novelService = service.NewNovelService(novelRepo, server.tagCache)
	server.submissionService = service.NewSubmissionService(submissionRepo, server.tagCache)
	server.listService = service.NewListService(listRepo, novelRepo)
	server.reviewService = service.NewReviewService(reviewRepo, novelRepo, server.isAdminByUserID)
	server.postService = service.NewPostService(postRepo, novelRepo, server.isAdminByUserID)
	server.commentService = service.NewCommentService(commentRepo, reviewRepo, postRepo, server.isAdminByUserID)
	server.followService = service.NewFollowService(followRepo, userRepo)

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

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
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

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "NovelShelf Backend Metrics Dashboard",
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

	// Public catalog routes
	novels := api.Group("/novels")
	novels.Get("/", s.GetNovels)
	// Specific /tags route before generic /:id
	novels.Get("/tags/suggestions", s.GetTagSuggestions)
	novels.Get("/:id/reviews", s.GetNovelReviews)
	novels.Get("/:id/recommendations", s.GetNovelRecommendations)
	novels.Get("/:id/posts", s.GetNovelPosts)
	novels.Get("/:id", s.GetNovel)

	// Public review/post browsing
	api.Get("/reviews/:id", s.GetReview)
	api.Get("/reviews/:id/comments", s.GetReviewComments)
	publicPosts := api.Group("/posts")
	publicPosts.Get("/", s.GetPosts)
	publicPosts.Get("/:id/comments", s.GetPostComments)
	publicPosts.Get("/:id", s.GetPost)
	api.Get("/comments/:id/replies", s.GetCommentReplies)

	// Public user profiles
	api.Get("/users/:userId/followers", s.GetFollowers)
	api.Get("/users/:userId/following", s.GetFollowing)
	api.Get("/users/:userId/posts", s.GetUserPosts)
	api.Get("/users/:userId/reviews", s.GetUserReviews)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Catalog mutations: users propose submissions, admins edit directly
	protected.Post("/novels", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "submit_novel"), s.CreateNovel)
	protected.Put("/novels/:id", s.AdminRequired(), s.UpdateNovel)
	protected.Delete("/novels/:id", s.AdminRequired(), s.DeleteNovel)
	protected.Post("/novels/:id/tags", s.AddNovelTags)

	// Submission routes (own submissions)
	submissions := protected.Group("/submissions")
	submissions.Get("/me", s.GetMySubmissions)
	submissions.Get("/:id", s.GetSubmission)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "user_search"), s.SearchUsers)
	users.Get("/", s.GetAllUsers)

	// Specific /:userId/:resource routes BEFORE generic /:userId route
	users.Get("/:userId/follow", s.CheckFollow)
	users.Post("/:userId/follow", s.ToggleFollow)
	users.Delete("/:userId/follow", s.Unfollow)
	users.Post("/:userId/promote-admin", s.AdminRequired(), s.PromoteToAdmin)
	users.Post("/:userId/demote-admin", s.AdminRequired(), s.DemoteFromAdmin)

	// Public profile route, registered after the specific /users/* routes so
	// "me" and "search" win over the :userId wildcard.
	api.Get("/users/:userId", s.GetUserProfile)

	// Reading list routes
	list := protected.Group("/novel-list")
	list.Get("/", s.GetMyList)
	list.Post("/", s.UpsertListEntry)
	list.Get("/favorites", s.GetFavorites)
	list.Get("/stats", s.GetListStats)
	list.Get("/:novelId", s.GetListEntry)
	list.Delete("/:novelId", s.DeleteListEntry)

	// Review routes
	reviews := protected.Group("/reviews")
	reviews.Post("/", middleware.RateLimit(
		s.redis, 2, time.Minute, "create_review"), s.CreateReview)
	reviews.Post("/:id/like", s.ToggleReviewLike)
	reviews.Get("/:id/like/check", s.CheckReviewLike)
	reviews.Post("/:id/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateReviewComment)
	reviews.Put("/:id", s.UpdateReview)
	reviews.Delete("/:id", s.DeleteReview)

	// Post routes
	posts := protected.Group("/posts")
	posts.Get("/feed", s.GetFeed)
	posts.Post("/", middleware.RateLimit(
		s.redis, 2, time.Minute, "create_post"), s.CreatePost)
	posts.Post("/:id/like", s.TogglePostLike)
	posts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreatePostComment)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	// Comment routes
	comments := protected.Group("/comments")
	comments.Post("/:id/like", s.ToggleCommentLike)
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	// Per-user feature flag evaluation
	protected.Get("/feature-flags", s.GetFeatureFlags)

	// Media upload
	protected.Post("/upload-banner", middleware.RateLimit(
		s.redis, 5, time.Minute, "upload"), s.UploadBanner)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/submissions", s.GetAdminSubmissions)
	admin.Put("/submissions/:id", s.ReviewSubmission)
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
		// The app degrades without Redis (no caching, fail-open rate limits)
		// but readiness should surface it.
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

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
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
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
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

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Public routes use it to personalize computed fields
// (liked, followed) when a token happens to be present.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
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
		AppName: "NovelShelf API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Keep tag suggestions warm even without catalog mutations.
	s.tagCache.StartPeriodicRefresh(s.shutdownCtx, cache.TagsTTL)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop background refresh goroutines
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

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
