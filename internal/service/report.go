package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"trading-report/config"
	"trading-report/internal/dto"
	"trading-report/internal/model"
	"trading-report/internal/repository"
	"trading-report/pkg/logger"
)

// ReportService runs the full pipeline for one reporting window: fetch closed
// PnL from the exchange, normalize, aggregate, optionally ask the model for a
// qualitative assessment, render the HTML report and archive the run.
type ReportService interface {
	Generate(ctx context.Context, param dto.GenerateReportParam) (*dto.ReportResult, error)
	DefaultWindow(now time.Time) (time.Time, time.Time)
	ListArchived(ctx context.Context, limit int) ([]model.TradingReport, error)
	GetArchived(ctx context.Context, id uint) (*model.TradingReport, error)
}

type reportService struct {
	cfg       *config.Config
	log       *logger.Logger
	repo      *repository.Repository
	analytics AnalyticsService
}

func NewReportService(cfg *config.Config, log *logger.Logger, repo *repository.Repository, analytics AnalyticsService) ReportService {
	return &reportService{
		cfg:       cfg,
		log:       log,
		repo:      repo,
		analytics: analytics,
	}
}

// DefaultWindow returns the configured lookback ending now.
func (s *reportService) DefaultWindow(now time.Time) (time.Time, time.Time) {
	end := now
	start := end.AddDate(0, 0, -s.cfg.Report.LookbackDays)
	return start, end
}

func (s *reportService) Generate(ctx context.Context, param dto.GenerateReportParam) (*dto.ReportResult, error) {
	start, end := param.Start, param.End
	if start.IsZero() || end.IsZero() {
		start, end = s.DefaultWindow(time.Now())
	}
	if !end.After(start) {
		return nil, fmt.Errorf("invalid report window: end %s is not after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	s.log.InfoContext(ctx, "generating trading report",
		logger.StringField("start", start.Format(time.RFC3339)),
		logger.StringField("end", end.Format(time.RFC3339)),
		logger.BoolField("skip_ai", param.SkipAI))

	records, err := s.repo.BybitRepo.GetClosedPnl(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch closed pnl: %w", err)
	}

	trades, dropped, err := s.analytics.Normalize(ctx, records)
	if err != nil {
		return nil, err
	}

	summary := s.analytics.BuildSummary(ctx, trades, dropped, param.UserNotes)

	var analysis *dto.AIAnalysis
	if !param.SkipAI {
		analysis, err = s.repo.AIRepo.AnalyzeTradingSummary(ctx, summary, param.UserNotes)
		if err != nil {
			// A failed assessment should not lose the quantitative report.
			s.log.ErrorContext(ctx, "ai analysis failed, continuing without it", logger.ErrorField(err))
			analysis = nil
		}
	}

	result := &dto.ReportResult{
		Summary:  summary,
		Analysis: analysis,
		Dropped:  dropped,
	}

	now := time.Now()
	htmlPath := reportFilePath(s.cfg.Report.OutputDir, now)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := renderReportHTML(s.cfg.Report.OutputDir, summary, analysis, now)
		if err != nil {
			return err
		}
		result.HTMLPath = path
		return nil
	})
	g.Go(func() error {
		id, err := s.archive(gctx, start, end, summary, analysis, htmlPath)
		if err != nil {
			return fmt.Errorf("archive report: %w", err)
		}
		result.ArchiveID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "trading report generated",
		logger.IntField("total_trades", summary.OverallPerformance.TotalTrades),
		logger.IntField("dropped_records", summary.DataQuality.DroppedRecords),
		logger.StringField("html_path", result.HTMLPath))

	return result, nil
}

func (s *reportService) archive(ctx context.Context, start, end time.Time, summary dto.TradingSummary, analysis *dto.AIAnalysis, htmlPath string) (uint, error) {
	if s.repo.ReportArchiveRepo == nil {
		return 0, nil
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return 0, fmt.Errorf("marshal summary: %w", err)
	}

	record := &model.TradingReport{
		PeriodStart:    start,
		PeriodEnd:      end,
		TotalTrades:    summary.OverallPerformance.TotalTrades,
		TotalPnl:       summary.OverallPerformance.TotalPnl,
		WinRate:        summary.OverallPerformance.WinRate,
		DroppedRecords: summary.DataQuality.DroppedRecords,
		Summary:        datatypes.JSON(summaryJSON),
		HTMLPath:       htmlPath,
	}
	if analysis != nil {
		analysisJSON, err := json.Marshal(analysis)
		if err != nil {
			return 0, fmt.Errorf("marshal analysis: %w", err)
		}
		record.Analysis = datatypes.JSON(analysisJSON)
	}

	if err := s.repo.ReportArchiveRepo.Create(ctx, record); err != nil {
		return 0, err
	}
	return record.ID, nil
}

func (s *reportService) ListArchived(ctx context.Context, limit int) ([]model.TradingReport, error) {
	if s.repo.ReportArchiveRepo == nil {
		return nil, fmt.Errorf("report archive is not configured")
	}
	return s.repo.ReportArchiveRepo.List(ctx, limit)
}

func (s *reportService) GetArchived(ctx context.Context, id uint) (*model.TradingReport, error) {
	if s.repo.ReportArchiveRepo == nil {
		return nil, fmt.Errorf("report archive is not configured")
	}
	return s.repo.ReportArchiveRepo.GetByID(ctx, id)
}
