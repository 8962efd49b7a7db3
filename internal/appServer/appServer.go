package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kutanig/explore-with-me/config"
	repository "github.com/kutanig/explore-with-me/internal/database/postgres"
	redisCache "github.com/kutanig/explore-with-me/internal/database/redis"
	"github.com/kutanig/explore-with-me/internal/service"
	"github.com/kutanig/explore-with-me/internal/transport"
	"github.com/kutanig/explore-with-me/internal/worker"

	"github.com/kutanig/explore-with-me/pkg/postgres"
	"github.com/kutanig/explore-with-me/pkg/rabbitmq"
	"github.com/kutanig/explore-with-me/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	compilationRepo := repository.NewCompilationRepository(db)
	hitRepo := repository.NewHitRepository(db)

	// Initialize views cache
	var viewsCache *redisCache.ViewsCache
	if cfg.Redis.Host != "" {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		viewsCache = redisCache.NewViewsCache(redisClient, cfg.Stats.CacheTTL)
		logrus.Info("Views cache initialized")
	} else {
		logrus.Warn("Redis host not provided, views cache disabled")
	}

	// Initialize notification queue
	var notifier service.Notifier
	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.URL != "" {
		queue, err := rabbitmq.NewRabbitMQ(rabbitmq.RabbitMQConfig{
			URL:       cfg.RabbitMQ.URL,
			QueueName: cfg.RabbitMQ.QueueName,
		})
		if err != nil {
			logrus.Errorf("Failed to initialize RabbitMQ: %v. Continuing without notifications...", err)
		} else {
			defer queue.Close()
			notifier = service.NewQueueNotifier(queue)
			logrus.Info("Notification queue initialized")
		}
	} else {
		logrus.Warn("RabbitMQ disabled, notifications are off")
	}

	// Initialize services
	statsService := service.NewStatsService(hitRepo, viewsCache, cfg.Stats.AppName, cfg.Stats.UniqueByIP)
	ratingService := service.NewRatingService(ratingRepo, eventRepo, userRepo)
	eventService := service.NewEventService(eventRepo, categoryRepo, userRepo, requestRepo, statsService, ratingService, notifier)
	requestService := service.NewRequestService(requestRepo, eventRepo, userRepo, notifier)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, eventRepo)
	compilationService := service.NewCompilationService(compilationRepo, eventRepo, requestRepo, statsService, ratingService)

	// Initialize retention worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	retentionWorker := worker.NewHitRetentionWorker(hitRepo, cfg.Worker.CleanupInterval, cfg.Stats.HitRetention)
	go retentionWorker.Start(ctx)
	logrus.Info("Hit retention worker started")

	// Initialize handlers
	handlers := &transport.Handlers{
		Event:       transport.NewEventHandler(eventService, statsService),
		Request:     transport.NewRequestHandler(requestService),
		Rating:      transport.NewRatingHandler(ratingService),
		User:        transport.NewUserHandler(userService),
		Category:    transport.NewCategoryHandler(categoryService),
		Compilation: transport.NewCompilationHandler(compilationService),
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(handlers)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
