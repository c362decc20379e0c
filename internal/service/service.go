package service

import (
	"trading-report/config"
	"trading-report/internal/repository"
	"trading-report/pkg/logger"
)

type Service struct {
	AnalyticsService AnalyticsService
	ReportService    ReportService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
) *Service {
	analyticsService := NewAnalyticsService(cfg, log)
	reportService := NewReportService(cfg, log, repo, analyticsService)
	schedulerService := NewSchedulerService(cfg, log, reportService)

	return &Service{
		AnalyticsService: analyticsService,
		ReportService:    reportService,
		SchedulerService: schedulerService,
	}
}
