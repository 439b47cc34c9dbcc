package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/config"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/controller"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/repository"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/service"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/configwatcher"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/database"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/logger"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/monitoring"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/security"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/tracing"

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
}

type repositories struct {
	user    *repository.UserRepository
	goal    *repository.GoalRepository
	history *repository.GoalHistoryRepository
	checkin *repository.CheckinRepository
}

type services struct {
	auth     *service.AuthService
	telegram *service.TelegramService
	goal     *service.GoalService
	stats    *service.StatsService
}

type controllers struct {
	auth   *controller.AuthController
	goal   *controller.GoalController
	stats  *controller.StatsController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		goal:    repository.NewGoalRepository(db),
		history: repository.NewGoalHistoryRepository(db),
		checkin: repository.NewCheckinRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.telegram = service.NewTelegramService(repos.user, cfg)
	s.stats = service.NewStatsService(repos.goal, repos.checkin, rdb)
	s.goal = service.NewGoalService(repos.goal, repos.history, repos.checkin, s.stats, db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth, s.telegram),
		goal:   controller.NewGoalController(s.goal),
		stats:  controller.NewStatsController(s.stats),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Telegram.BotToken == "" {
		logger.Log.Warn("Telegram bot token not configured, Telegram login disabled")
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	ctrls := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("goal-tracker", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	// 配置热更新：重载后原地替换配置内容，持有同一指针的组件立即生效
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		*app.Config = *newCfg
		logger.Log.Info("Config reloaded")
	})

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

	// 等待中断信号优雅地关闭服务器
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
