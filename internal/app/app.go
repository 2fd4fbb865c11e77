package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"trading_edu_backend/internal/config"
	"trading_edu_backend/internal/controller"
	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/repository"
	"trading_edu_backend/internal/service"
	"trading_edu_backend/pkg/configwatcher"
	"trading_edu_backend/pkg/database"
	"trading_edu_backend/pkg/logger"
	"trading_edu_backend/pkg/monitoring"
	"trading_edu_backend/pkg/security"
	"trading_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	configMu        sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	surrogate *repository.SurrogateProvider
	content   repository.ContentStore
	exercise  repository.ExerciseStore
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	content  *service.ContentService
	exercise *service.ExerciseService
	grading  *service.GradingService
}

type controllers struct {
	auth      *controller.AuthController
	interview *controller.InterviewController
	study     *controller.StudyController
	media     *controller.MediaController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	surrogate := repository.NewSurrogateProvider()
	return &repositories{
		user:      repository.NewUserRepository(db),
		surrogate: surrogate,
		content: repository.NewFallbackContentStore(
			repository.NewContentRepository(db), surrogate, rdb, logger.Log),
		exercise: repository.NewFallbackExerciseStore(
			repository.NewExerciseRepository(db), surrogate, rdb, logger.Log),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.content)
	s.exercise = service.NewExerciseService(repos.exercise, repos.content)
	s.grading = service.NewGradingService(s.exercise)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		interview: controller.NewInterviewController(s.content),
		study:     controller.NewStudyController(s.exercise, s.grading),
		media:     controller.NewMediaController(s.storage),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks keeps the surrogate dataset warm: while the database
// is healthy, its latest tree is periodically snapshotted so an outage
// serves recent content rather than only the hard-coded defaults.
func (a *App) startBackgroundTasks(repos *repositories) {
	interval := time.Duration(a.Config.Fallback.RefreshMinutes) * time.Minute
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			for _, market := range model.AllMarkets() {
				if _, err := repos.content.ListTopics(market); err != nil {
					logger.Log.Error("surrogate refresh failed", zap.Error(err))
				}
			}
		}
	}()
}

func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
		a.configMu.Lock()
		callbacks := a.configCallbacks
		a.configMu.Unlock()
		a.Config = cfg
		for _, cb := range callbacks {
			cb(cfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The fallback layer works without Redis, snapshots are just skipped.
		logger.Log.Warn("Redis unavailable, fallback snapshots disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("trading-edu", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(repos)
	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
