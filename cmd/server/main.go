package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"purchase-intent-service/internal/adapters/primary/http/handlers"
	"purchase-intent-service/internal/adapters/primary/http/middleware"
	"purchase-intent-service/internal/adapters/secondary/artifact"
	"purchase-intent-service/internal/adapters/secondary/dataset"
	"purchase-intent-service/internal/adapters/secondary/postgres"
	"purchase-intent-service/internal/config"
	"purchase-intent-service/internal/core/domain"
	output "purchase-intent-service/internal/core/ports/output"
	"purchase-intent-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Secondary Adapters (Output Ports)
	loaders := map[string]output.ArtifactLoader{
		domain.StrategyROCAUC: artifact.NewStore(cfg.Model.ROCAUCArtifactPath),
		domain.StrategyPRAUC:  artifact.NewStore(cfg.Model.PRAUCArtifactPath),
	}
	trainingData := dataset.NewCSVReader(cfg.Model.DataDir)

	// Prediction log (optional - based on config)
	var predictionLog output.PredictionLogRepository
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			log.Fatalf("parse db config: %v", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping db: %v", err)
		}
		predictionLog = postgres.NewPredictionLogRepository(pool)
		log.Info("prediction log enabled")
	} else {
		log.Info("prediction log disabled")
	}

	// Core Services
	adapter := services.NewModelAdapter(loaders)
	scoringSvc := services.NewScoringService(
		adapter, trainingData, predictionLog,
		cfg.Scoring.GlobalAvgPurchaseProb, cfg.Scoring.DefaultStrategy,
	)
	targetingSvc := services.NewTargetingService(adapter, cfg.Scoring.TargetingStrategy)

	// Warm the artifact cache before the server accepts traffic so
	// concurrent first requests never race the load path.
	for name, loader := range loaders {
		if _, err := loader.Load(context.Background()); err != nil {
			log.WithError(err).Warnf("artifact %q not loaded at startup (lazy load will retry)", name)
		}
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(adapter, scoringSvc, targetingSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/purchase-intent")
	h.RegisterRoutes(api)

	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
