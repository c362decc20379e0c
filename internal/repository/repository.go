package repository

import (
	"fmt"

	"trading-report/config"
	"trading-report/pkg/cache"
	"trading-report/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	BybitRepo         BybitRepository
	AIRepo            AIRepository
	ReportArchiveRepo ReportArchiveRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	aiRepo, err := newAIRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	repo := &Repository{
		BybitRepo: NewBybitRepository(cfg, log, inmemoryCache),
		AIRepo:    aiRepo,
	}
	// The one-shot CLI runs without a database; archiving is skipped then.
	if db != nil {
		repo.ReportArchiveRepo = NewReportArchiveRepository(db)
	}
	return repo, nil
}

func newAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	switch cfg.AI.Provider {
	case "gemini":
		return NewGeminiAIRepository(cfg, log)
	case "openrouter", "":
		return NewOpenRouterAIRepository(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AI.Provider)
	}
}
