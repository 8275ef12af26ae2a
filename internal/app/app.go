package app

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

// App holds the wiring shared by the HTTP server and the CLI.
type App struct {
	Config    *config.Config
	Log       *zap.Logger
	DB        *gorm.DB
	Pipeline  *services.Pipeline
	Extractor *services.TextExtractor
	Storage   services.StorageService
}

// New loads configuration and connects the database and model backend.
func New(ctx context.Context, v *viper.Viper, configFile string) (*App, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		return nil, err
	}
	gemini, err := services.NewGeminiService(ctx, apiKey, cfg.Gemini, log, cfg.Log.MaxLength)
	if err != nil {
		return nil, err
	}

	storage := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storage.EnsureUploadDir(); err != nil {
		return nil, err
	}

	pipeline := services.NewPipeline(services.PipelineDeps{
		Documents:  repositories.NewDocumentRepository(db),
		Criteria:   repositories.NewCriteriaRepository(db),
		Scores:     repositories.NewScoreRepository(db),
		Candidates: repositories.NewCandidateRepository(db),
		Generator:  gemini,
		ReportsDir: cfg.Storage.ReportsPath,
		Log:        log,
	})

	return &App{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Pipeline:  pipeline,
		Extractor: services.NewTextExtractor(),
		Storage:   storage,
	}, nil
}

func (a *App) Close() {
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.Log.Sync()
}
