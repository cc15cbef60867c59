package bootstrap

import (
	"context"
	"fmt"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/profiling"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/api"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/processor"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
)

// Start runs the classification service until SIGINT or SIGTERM.
func Start() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logger, err := CreateLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := SetupDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", infralogger.Error(closeErr))
		}
	}()

	stopProfiling := profiling.Start(cfg.Profiling, logger)
	defer stopProfiling()

	ctx := context.Background()
	rules, err := LoadRuleSets(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	tp := telemetry.NewProvider()
	delegate := NewDelegate(cfg, logger)

	engine, err := NewEngine(cfg, rules, delegate, logger, tp)
	if err != nil {
		return err
	}

	batch := processor.NewBatchProcessor(engine, cfg.Service.Concurrency, logger, tp)
	logger.Info("Batch processor initialized", infralogger.Int("concurrency", batch.Concurrency()))

	handlerCfg := api.HandlerConfig{
		Engine:   engine,
		Batch:    batch,
		Service:  cfg.Service.Name,
		Version:  cfg.Service.Version,
		MaxBatch: cfg.Service.MaxBatchSize,
		Logger:   logger,
	}
	if delegate != nil {
		handlerCfg.DelegateURL = delegate.BaseURL()
	}

	server := NewServer(cfg, api.NewHandler(handlerCfg), engine, db, tp, logger)

	logger.Info("Starting HTTP server",
		infralogger.Int("port", cfg.Service.Port),
		infralogger.String("version", cfg.Service.Version),
	)
	if err = server.RunWithGracefulShutdown(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
