package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	appControllers "github.com/studysphere/backend/internal/app/controllers"
	appMigrations "github.com/studysphere/backend/internal/app/migrations"
	appRepos "github.com/studysphere/backend/internal/app/repositories"
	appRoutes "github.com/studysphere/backend/internal/app/routes"
	appServices "github.com/studysphere/backend/internal/app/services"
	"github.com/studysphere/backend/internal/config"
	"github.com/studysphere/backend/internal/db"
	appMiddleware "github.com/studysphere/backend/internal/middleware"
	"github.com/studysphere/backend/internal/pkg/assistant"
	pkgAuth "github.com/studysphere/backend/internal/pkg/auth"
	"github.com/studysphere/backend/internal/pkg/cache"
	"github.com/studysphere/backend/internal/pkg/email"
	"github.com/studysphere/backend/internal/pkg/filestorage"
	"github.com/studysphere/backend/internal/pkg/helpers"
	"github.com/studysphere/backend/internal/pkg/logger"
	ws "github.com/studysphere/backend/internal/pkg/websocket"
	"github.com/studysphere/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	ResourceService        appServices.ResourceService
	EngagementService      appServices.EngagementService
	AnnouncementService    appServices.AnnouncementService
	ChatService            appServices.ChatService
	UserService            appServices.UserService
	AssistantService       appServices.AssistantService
	AuthController         *appControllers.AuthController
	ResourceController     *appControllers.ResourceController
	AnnouncementController *appControllers.AnnouncementController
	ChatController         *appControllers.ChatController
	UserController         *appControllers.UserController
	AssistantController    *appControllers.AssistantController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	AssistantLimiter       *appMiddleware.RateLimiter
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	FileStorage            *filestorage.LocalStorage
	Hub                    *ws.Hub
	WSHandler              *ws.Handler
	ListCache              *cache.Cache
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	// File storage: the base URL must match the static file serving path.
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + cfg.Storage.BaseURL
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Resource list cache. A missing Redis address disables caching; a
	// configured-but-unreachable Redis fails startup so operators notice.
	if cfg.Redis.Addr != "" {
		deps.ListCache, err = cache.New(context.Background(), cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.CacheTTL(),
		}, lgr)
		if err != nil {
			lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Resource list cache enabled")
	} else {
		lgr.Info().Msg("Redis address not configured, resource list cache disabled")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	assistantClient := assistant.NewClient(assistant.Config{
		BaseURL: cfg.Assistant.BaseURL,
		Model:   cfg.Assistant.Model,
		APIKey:  cfg.Assistant.APIKey,
		Timeout: cfg.AssistantTimeout(),
	})

	// Chat hub and its persistence pipeline. The hub must be running
	// before the first websocket client connects.
	deps.Hub = ws.NewHub(lgr)
	go deps.Hub.Run()
	broadcaster := ws.NewMessageHandler(deps.Repos.ChatRepository, deps.Repos.UserRepository, deps.Hub, lgr)
	broadcaster.Start()
	deps.WSHandler = ws.NewHandler(deps.Hub, lgr)

	// Services
	deps.AuthService = appServices.NewAuthService(
		database,
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		emailService,
		lgr,
	)
	deps.ResourceService = appServices.NewResourceService(
		deps.Repos.ResourceRepository,
		deps.Repos.EngagementRepository,
		deps.FileStorage,
		deps.ListCache,
		lgr,
	)
	deps.EngagementService = appServices.NewEngagementService(
		deps.Repos.EngagementRepository,
		deps.Repos.ResourceRepository,
		lgr,
	)
	deps.AnnouncementService = appServices.NewAnnouncementService(deps.Repos.AnnouncementRepository, lgr)
	deps.ChatService = appServices.NewChatService(
		deps.Repos.ChatRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		broadcaster,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.AssistantService = appServices.NewAssistantService(assistantClient, lgr)

	// Middleware
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.AssistantLimiter = appMiddleware.NewRateLimiter(
		rate.Limit(float64(cfg.Assistant.RatePerMinute)/60.0),
		cfg.Assistant.RateBurst,
	)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService, deps.EngagementService)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService)
	deps.ChatController = appControllers.NewChatController(deps.ChatService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.AssistantController = appControllers.NewAssistantController(deps.AssistantService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ResourceController,
		deps.AnnouncementController,
		deps.ChatController,
		deps.UserController,
		deps.AssistantController,
		deps.WSHandler,
		deps.AuthMiddleware,
		deps.AssistantLimiter,
	)

	// Liveness endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
