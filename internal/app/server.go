// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fixitnow_backend/internal/admin"
	"fixitnow_backend/internal/auth"
	"fixitnow_backend/internal/booking"
	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/config"
	"fixitnow_backend/internal/jobs"
	"fixitnow_backend/internal/middleware"
	"fixitnow_backend/internal/provider"
	"fixitnow_backend/internal/review"
	"fixitnow_backend/internal/shared"
	"fixitnow_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Jobs
	ratingResyncJob *jobs.RatingResyncJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	providerHandler *provider.Handler,
	bookingHandler *booking.Handler,
	reviewHandler *review.Handler,
	adminHandler *admin.Handler,
	ratingResyncJob *jobs.RatingResyncJob,
	tokenService shared.TokenService,
	userResolver shared.UserResolver,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, userResolver, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "FixItNow API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	providerHandler.RegisterRoutes(v1, authMW)
	bookingHandler.RegisterRoutes(v1, authMW)
	reviewHandler.RegisterRoutes(v1, authMW)

	// Admin surface: dashboard plus per-domain moderation routes, all
	// behind the admin role.
	adminGroup := v1.Group("/admin", authMW, adminRoleMW)
	adminHandler.RegisterRoutes(adminGroup)
	userHandler.RegisterAdminRoutes(adminGroup)
	providerHandler.RegisterAdminRoutes(adminGroup)
	bookingHandler.RegisterAdminRoutes(adminGroup)
	reviewHandler.RegisterAdminRoutes(adminGroup)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:      httpServer,
		router:          router,
		cfg:             cfg,
		logger:          logger,
		ratingResyncJob: ratingResyncJob,
	}, nil
}

func (s *Server) Start() error {
	if s.ratingResyncJob != nil {
		if err := s.ratingResyncJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start rating resync job", zap.Error(err))
		}
	} else {
		s.logger.Info("Rating resync job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.ratingResyncJob != nil {
		s.ratingResyncJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
