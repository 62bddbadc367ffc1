package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dailywag-backend/config"
	deliveryHttp "dailywag-backend/internal/delivery/http"
	"dailywag-backend/internal/delivery/http/handler"
	"dailywag-backend/internal/delivery/http/middleware"
	"dailywag-backend/internal/infrastructure/cache"
	"dailywag-backend/internal/infrastructure/database"
	"dailywag-backend/internal/infrastructure/messaging"
	"dailywag-backend/internal/repository"
	"dailywag-backend/internal/service"
	"dailywag-backend/internal/usecase"
	"dailywag-backend/pkg/jwt"
	"dailywag-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Publisher   *messaging.Publisher
	Sweeper     *service.LifecycleSweeper
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	if cfg.DB.MigrateOnBoot {
		if err := database.RunMigrations(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Redis only backs logout revocation, so the API still serves without it.
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Info("Redis connected successfully")
	} else {
		logrus.Warn("REDIS_HOST is not set, token revocation is disabled")
	}

	if cfg.RabbitMQ.URL != "" {
		publisher, err := messaging.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		app.Publisher = publisher
		logrus.Infof("Publishing booking events to exchange %s", cfg.RabbitMQ.Exchange)
	}

	// Initialize all layers
	app.initializeServer()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires repositories, services, usecases and handlers into
// the HTTP server and the lifecycle sweeper.
func (app *App) initializeServer() {
	cfg := app.Config
	db := app.DB
	loc := cfg.App.Location()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	scheduleRepo := repository.NewWeeklyScheduleRepository()
	bookingRepo := repository.NewBookingRepository()
	petRepo := repository.NewPetRepository()
	immunizationRepo := repository.NewImmunizationRepository()
	adoptionRepo := repository.NewAdoptionRepository()
	productRepo := repository.NewProductRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	membershipRepo := repository.NewMembershipRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	var eventPublisher service.JSONPublisher
	if app.Publisher != nil {
		eventPublisher = app.Publisher
	}
	bookingEvents := service.NewBookingEventService(eventPublisher, log)

	var denylist middleware.TokenDenylist
	var revoker usecase.TokenRevoker
	if app.RedisClient != nil {
		tokens := cache.NewTokenDenylist(app.RedisClient)
		denylist = tokens
		revoker = tokens
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, revoker)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, loc, scheduleRepo, bookingRepo, doctorProfileRepo, auditService)
	bookingUsecase := usecase.NewBookingUsecase(db, log, loc, bookingRepo, petRepo, doctorProfileRepo, auditService, bookingEvents)
	petUsecase := usecase.NewPetUsecase(db, log, loc, petRepo, immunizationRepo, auditService)
	adoptionUsecase := usecase.NewAdoptionUsecase(db, log, petRepo, adoptionRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorProfileRepo)
	productUsecase := usecase.NewProductUsecase(db, log, productRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	membershipUsecase := usecase.NewMembershipUsecase(db, log, loc, membershipRepo, auditService)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:       handler.NewAuthHandler(authUsecase, jwtService),
		Schedule:   handler.NewScheduleHandler(scheduleUsecase, customValidator),
		Booking:    handler.NewBookingHandler(bookingUsecase, customValidator),
		Pet:        handler.NewPetHandler(petUsecase, customValidator),
		Adoption:   handler.NewAdoptionHandler(adoptionUsecase, customValidator),
		Doctor:     handler.NewDoctorHandler(doctorUsecase),
		Product:    handler.NewProductHandler(productUsecase, customValidator),
		AuditLog:   handler.NewAuditLogHandler(auditLogUsecase),
		Membership: handler.NewMembershipHandler(membershipUsecase, customValidator),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, denylist, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS)
	rateLimiter := middleware.NewRateLimitMiddleware(cfg.RateLimit, log)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, rateLimiter)
	httpRouter := router.Setup()

	app.Sweeper = service.NewLifecycleSweeper(bookingUsecase, cfg.Booking.SweepInterval, log)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.Sweeper.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background work and closes all connections.
func (app *App) Close() {
	if app.Sweeper != nil {
		app.Sweeper.Stop()
	}

	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			logrus.Warnf("Failed to close RabbitMQ publisher: %v", err)
		}
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
