package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"flatscout/internal/config"
	"flatscout/internal/db"
	apihttp "flatscout/internal/http"
	"flatscout/internal/metrics"
	"flatscout/internal/repository"
	"flatscout/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.RunMigrations {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	profileRepo := repository.NewPgFlatmateProfileRepository(pool)
	connectionRepo := repository.NewPgConnectionRepository(pool)

	matchLimiter := service.NewMemoryRateLimiter(cfg.MatchRateWindow(), cfg.MatchRateLimit)
	connectLimiter := service.NewMemoryRateLimiter(time.Hour, cfg.ConnectRateLimit)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limits", zap.Error(err))
		} else {
			matchLimiter = service.NewRedisRateLimiter(redisClient, cfg.MatchRateWindow(), cfg.MatchRateLimit)
			connectLimiter = service.NewRedisRateLimiter(redisClient, time.Hour, cfg.ConnectRateLimit)
		}
		cancel()
	}

	observer, err := metrics.NewPrometheusObserver("flatscout", nil)
	if err != nil {
		logger.Fatal("metrics init", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessTTL())
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	profileSvc := service.NewProfileService(logger, profileRepo)
	matchSvc := service.NewMatchService(logger, profileRepo, connectionRepo, matchLimiter, observer, cfg.MatchCandidateLimit)
	connectionSvc := service.NewConnectionService(logger, userRepo, connectionRepo, connectLimiter)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins(),
		JWT:            jwtSvc,
		Flatmates:      apihttp.NewFlatmateHandler(logger, profileSvc, matchSvc),
		Connections:    apihttp.NewConnectionHandler(logger, connectionSvc),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
