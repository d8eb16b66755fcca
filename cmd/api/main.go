package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/background"
	"github.com/abhisekadhikari/burningsawals/internal/cache"
	"github.com/abhisekadhikari/burningsawals/internal/config"
	"github.com/abhisekadhikari/burningsawals/internal/database"
	"github.com/abhisekadhikari/burningsawals/internal/handlers"
	middlewareCustom "github.com/abhisekadhikari/burningsawals/internal/middleware"
	"github.com/abhisekadhikari/burningsawals/internal/repositories"
	"github.com/abhisekadhikari/burningsawals/internal/routes"
	"github.com/abhisekadhikari/burningsawals/internal/services"
	pkghttp "github.com/abhisekadhikari/burningsawals/pkg/http"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Run schema migrations before opening the pool
	if err := database.Migrate(&cfg.Database, logger); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize redis (abuse guard counters)
	rdb, err := cache.NewRedis(&cfg.Redis, logger)
	if err != nil {
		logger.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer rdb.Close()

	// Initialize repositories
	otpRepo := repositories.NewOTPRepository(db)
	userRepo := repositories.NewUserRepository(db)
	genreRepo := repositories.NewGenreRepository(db)
	questionTypeRepo := repositories.NewQuestionTypeRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	interactionRepo := repositories.NewInteractionRepository(db)

	// Initialize token manager
	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenPrivateKeyPEM, cfg.Auth.TokenExpiry)
	if err != nil {
		logger.Error("failed to initialize token manager", slog.Any("error", err))
		os.Exit(1)
	}

	// SMS dispatch: Fast2SMS when configured, console fallback for development
	var sms services.SMSSender
	if cfg.SMS.Fast2SMSAPIKey != "" {
		sms = services.NewFast2SMSService(cfg.SMS.Fast2SMSAPIKey, cfg.SMS.Fast2SMSRoute, logger)
	} else {
		logger.Warn("FAST2SMS_API_KEY not set, using console sms dispatch")
		sms = services.NewConsoleSMSService(logger)
	}

	// Abuse guard around the OTP endpoints
	guard := services.NewAbuseGuard(rdb.Client, otpRepo, services.AbuseGuardConfig{
		SendLimit:    cfg.Auth.OTPSendLimit,
		SendWindow:   cfg.Auth.OTPSendWindow,
		VerifyLimit:  cfg.Auth.OTPVerifyLimit,
		VerifyWindow: cfg.Auth.OTPVerifyWindow,
	}, logger)

	// Initialize services
	otpService := services.NewOTPService(otpRepo, userRepo, sms, logger)
	authService := services.NewAuthService(otpService, userRepo, tokenManager, guard, logger)
	genreService := services.NewGenreService(genreRepo, logger)
	questionTypeService := services.NewQuestionTypeService(questionTypeRepo, logger)
	questionService := services.NewQuestionService(questionRepo, logger)
	interactionService := services.NewInteractionService(interactionRepo, questionRepo, logger)

	// Initialize cleanup manager
	cleanupManager := background.NewCleanupManager(otpService, logger, cfg.Auth.CleanupInterval)

	// Google OAuth is optional; routes are only mounted when configured
	var google handlers.GoogleExchanger
	if cfg.Google.Enabled() {
		google = auth.NewGoogleAuthenticator(&cfg.Google)
	}

	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, google, ipConfig)
	genreHandler := handlers.NewGenreHandler(genreService)
	questionTypeHandler := handlers.NewQuestionTypeHandler(questionTypeService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	interactionHandler := handlers.NewInteractionHandler(interactionService)

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env)
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(
		router,
		authHandler,
		genreHandler,
		questionTypeHandler,
		questionHandler,
		interactionHandler,
		tokenManager,
		middlewareCustom.RateLimitConfig{
			RequestLimit: cfg.Auth.APIRequestLimit,
			Window:       cfg.Auth.APIRequestWindow,
		},
		cfg.Google.Enabled(),
	)

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start cleanup task
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
