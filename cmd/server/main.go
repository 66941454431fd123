package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/saniya-gs/health-recommendation-system/internal/config"
	"github.com/saniya-gs/health-recommendation-system/internal/database"
	"github.com/saniya-gs/health-recommendation-system/internal/handler"
	"github.com/saniya-gs/health-recommendation-system/internal/logging"
	"github.com/saniya-gs/health-recommendation-system/internal/middleware"
	"github.com/saniya-gs/health-recommendation-system/internal/predictor"
	"github.com/saniya-gs/health-recommendation-system/internal/queue"
	"github.com/saniya-gs/health-recommendation-system/internal/repository"
	"github.com/saniya-gs/health-recommendation-system/internal/router"
	"github.com/saniya-gs/health-recommendation-system/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config
	log, syncLog := logging.New(cfg.IsProd())
	defer func() { _ = syncLog() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()
	if cfg.MigrateOnStart {
		if err := database.Migrate(db); err != nil {
			log.Fatal("database migrate failed", zap.Error(err))
		}
	}

	// Redis is optional: without it the limiter and cache pass through.
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	healthRepo := repository.NewHealthRepo(db)
	mentalRepo := repository.NewMentalHealthRepo(db)
	fitnessRepo := repository.NewFitnessRepo(db)

	pc := config.LoadPredictorConfig()
	disease := predictor.NewDiseaseClient(pc.DiseaseURL, pc.Timeout, log)
	mental := predictor.NewMentalHealthClient(pc.MentalURL, pc.Timeout, log)
	fitness := predictor.NewFitnessClient(pc.FitnessURL, pc.Timeout, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events service.EventPublisher = service.NopPublisher{}
	var async *service.AsyncPublisher
	var broker *service.AMQPPublisher
	if cfg.EventsEnabled {
		broker = service.NewAMQPPublisher(cfg.AMQPURL, log)
		async = service.NewAsyncPublisher(broker, log)
		events = async

		audit := &lumberjack.Logger{
			Filename:   cfg.AuditLogPath,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		defer audit.Close()
		consumer := &queue.Consumer{URL: cfg.AMQPURL, Sink: audit, Log: log}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("health-events consumer stopped", zap.Error(err))
			}
		}()
	}

	cleanup, err := service.StartSessionCleanup("@hourly", sessions, log)
	if err != nil {
		log.Fatal("session cleanup schedule failed", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())

	router.RegisterRoutes(e, &handler.ReadinessHandler{DB: db, Redis: rdb})

	api := e.Group("/api",
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.SessionHeader},
			AllowCredentials: true,
		}),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
	)
	session := middleware.RequireSession(sessions, cfg.SessionSecret, log)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterAuth(api, handler.NewAuthHandler(cfg, users, sessions, log), session)
	router.RegisterHealth(api, handler.NewDiseaseHandler(healthRepo, disease, events, log), session)
	router.RegisterMentalHealth(api, handler.NewMentalHealthHandler(mentalRepo, mental, events, log), session, cache)
	router.RegisterFitness(api, handler.NewFitnessHandler(fitnessRepo, fitness, events, log), session)

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	<-cleanup.Stop().Done()
	if async != nil {
		async.Wait()
		_ = broker.Close()
	}
}
