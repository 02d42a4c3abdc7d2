package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ayursathi-api/config"
	deliveryHttp "ayursathi-api/internal/delivery/http"
	"ayursathi-api/internal/delivery/http/handler"
	"ayursathi-api/internal/delivery/http/middleware"
	"ayursathi-api/internal/infrastructure/cache"
	"ayursathi-api/internal/infrastructure/database"
	"ayursathi-api/internal/infrastructure/llm"
	"ayursathi-api/internal/repository"
	"ayursathi-api/internal/service"
	"ayursathi-api/internal/usecase"
	"ayursathi-api/pkg/jwt"
	"ayursathi-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Gateway     llm.Gateway
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize the model gateway
	gemini, err := llm.NewGeminiGateway(context.Background(), cfg.LLM)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create model gateway: %w", err)
	}
	app.Gateway = llm.RateLimited(gemini, cfg.LLM.RPS, cfg.LLM.Burst)
	logrus.WithField("model", cfg.LLM.Model).Info("Model gateway ready")

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient, app.Gateway)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, gateway llm.Gateway) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	diagnosisRepo := repository.NewDiagnosisRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize Redis-backed services
	tokenRegistry := service.NewRedisTokenRegistry(redisClient)
	assessmentQuota := service.NewAssessmentQuota(redisClient, cfg.Diagnosis.DailyLimit)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, jwtService, tokenRegistry)
	userUsecase := usecase.NewUserUsecase(log, userRepo, auditService)
	diagnosisUsecase := usecase.NewDiagnosisUsecase(log, userRepo, diagnosisRepo, gateway, assessmentQuota, auditService)
	guidanceUsecase := usecase.NewGuidanceUsecase(log, userRepo, gateway)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	diagnosisHandler := handler.NewDiagnosisHandler(diagnosisUsecase, guidanceUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenRegistry)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.ClientURL)

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, userHandler, diagnosisHandler, auditLogHandler, authMiddleware, corsMiddleware)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// In-flight assessments get the same grace period as any other request
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
