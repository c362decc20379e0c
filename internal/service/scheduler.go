package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"trading-report/config"
	"trading-report/internal/dto"
	"trading-report/pkg/logger"
	"trading-report/pkg/utils"
)

// SchedulerService owns the periodic report job. The cron expression runs in
// the reporting timezone so "Friday 20:00" means Friday evening local to the
// trader, not UTC.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg    *config.Config
	log    *logger.Logger
	report ReportService
	cron   *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, report ReportService) SchedulerService {
	loc := utils.ReportingLocation(cfg.Report.TimeZone)
	return &schedulerService{
		cfg:    cfg,
		log:    log,
		report: report,
		cron:   cron.New(cron.WithLocation(loc)),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Scheduler.ReportCron, func() {
		s.runScheduledReport(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.InfoContext(ctx, "report scheduler started",
		logger.StringField("cron", s.cfg.Scheduler.ReportCron),
		logger.StringField("time_zone", s.cfg.Report.TimeZone))
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.cfg.Scheduler.TimeoutDuration):
		s.log.Warn("scheduler stop timed out waiting for running jobs")
	}
}

func (s *schedulerService) runScheduledReport(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
	defer cancel()

	start, end := s.report.DefaultWindow(time.Now())
	result, err := s.report.Generate(runCtx, dto.GenerateReportParam{Start: start, End: end})
	if err != nil {
		s.log.ErrorContext(runCtx, "scheduled report failed", logger.ErrorField(err))
		return
	}

	s.log.InfoContext(runCtx, "scheduled report completed",
		logger.IntField("total_trades", result.Summary.OverallPerformance.TotalTrades),
		logger.StringField("html_path", result.HTMLPath))
}
