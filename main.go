package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"intellicath/config"
	"intellicath/db"
	qhttp "intellicath/http"
	"intellicath/logger"
	"intellicath/ml"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("configuration loaded",
		zap.String("config", *configPath),
		zap.Int("max_prediction_time", cfg.MaxPredictionTime))

	// 2. Prepare database; an unreachable store only disables persistence
	driver, dsn := cfg.DataSource()
	store := db.NewStore(driver, dsn, zl.Named("db"))
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.InitSchema(initCtx); err != nil {
		zl.Error("database unavailable, readings will not be stored",
			zap.String("driver", driver), zap.Error(err))
	}
	cancel()

	predictor := ml.NewPredictor(ml.PredictorConfig{
		ModelType:  cfg.Model.Type,
		ModelPath:  cfg.Model.Path,
		ScalerPath: cfg.Model.ScalerPath,
	}, zl.Named("ml"))

	handler, err := qhttp.NewHandler(predictor, store, zl.Named("http"))
	if err != nil {
		zl.Fatal("Failed to build handlers", zap.Error(err))
	}

	// 3. Start HTTP server
	serverConfig := qhttp.DefaultServerConfig()
	serverConfig.Port = cfg.Http.Port
	serverConfig.CertFile = cfg.Http.CertFile
	serverConfig.KeyFile = cfg.Http.KeyFile
	if cfg.Http.Timeout > 0 {
		serverConfig.Timeout = cfg.Http.Timeout
	}
	if len(cfg.Http.AllowedOrigins) > 0 {
		serverConfig.AllowedOrigins = cfg.Http.AllowedOrigins
	}

	server := qhttp.NewServer(serverConfig, handler, zl)
	go func() {
		if err := server.Start(); err != nil {
			zl.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	if err := server.Stop(); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("exiting")
}
