package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/driveline-labs/survey-engine/pkg/chart"
	"github.com/driveline-labs/survey-engine/pkg/config"
	"github.com/driveline-labs/survey-engine/pkg/dataset"
	"github.com/driveline-labs/survey-engine/pkg/handlers"
	"github.com/driveline-labs/survey-engine/pkg/llm"
	"github.com/driveline-labs/survey-engine/pkg/middleware"
	"github.com/driveline-labs/survey-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	columns, err := dataset.LoadColumns(cfg.Dataset.ColumnsPath)
	if err != nil {
		logger.Fatal("Failed to load column table", zap.Error(err))
	}
	ds, err := dataset.Load(cfg.Dataset.CSVPath, columns, logger)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}

	opts := services.Options{Threshold: cfg.Resolver.Threshold}
	if cfg.LLM.IsAvailable() {
		client, err := llm.NewClient(&llm.Config{
			Endpoint: cfg.LLM.Endpoint,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to build LLM client", zap.Error(err))
		}
		opts.Extractor = services.NewLLMExtractor(client, cfg.Resolver.Threshold, logger)
		logger.Info("LLM condition extraction enabled", zap.String("model", cfg.LLM.Model))
	}

	answerSvc, err := services.NewAnswerService(ds, chart.NewRenderer(logger), opts, logger)
	if err != nil {
		logger.Fatal("Failed to build answer service", zap.Error(err))
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAskHandler(answerSvc, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting survey-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("columns", len(ds.Columns)))

	handler := middleware.RequestLogger(logger)(mux)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
