package service

import (
	"context"
	"time"

	"trading-report/config"
	"trading-report/internal/dto"
	"trading-report/pkg/logger"
	"trading-report/pkg/utils"
)

// AnalyticsService is the deterministic pipeline from raw closed-PnL records
// to the TradingSummary. It holds no mutable state across calls; every run
// builds its summary from scratch, so concurrent runs over different windows
// cannot interfere.
type AnalyticsService interface {
	Normalize(ctx context.Context, records []dto.BybitClosedPnl) ([]dto.NormalizedTrade, []dto.DroppedRecord, error)
	BuildSummary(ctx context.Context, trades []dto.NormalizedTrade, dropped []dto.DroppedRecord, notes *dto.UserNotes) dto.TradingSummary
}

type analyticsService struct {
	cfg *config.Config
	log *logger.Logger
	loc *time.Location
}

func NewAnalyticsService(cfg *config.Config, log *logger.Logger) AnalyticsService {
	return &analyticsService{
		cfg: cfg,
		log: log,
		loc: utils.ReportingLocation(cfg.Report.TimeZone),
	}
}

// BuildSummary assembles the aggregate, risk-multiple, and stop-classification
// blocks into one TradingSummary. A standard-risk override in the user notes
// takes precedence over the configured default. Empty input yields a summary
// with explicit zero/nil fields, never an error.
func (s *analyticsService) BuildSummary(ctx context.Context, trades []dto.NormalizedTrade, dropped []dto.DroppedRecord, notes *dto.UserNotes) dto.TradingSummary {
	standardRisk := s.cfg.Report.StandardRisk
	if notes != nil && notes.RiskManagement != nil && notes.RiskManagement.StandardRiskPerTrade != nil {
		standardRisk = *notes.RiskManagement.StandardRiskPerTrade
	}

	summary := dto.TradingSummary{
		Period:             computePeriod(trades),
		OverallPerformance: computeOverall(trades),
		RiskReward:         computeRiskReward(trades, standardRisk),
		Symbols:            computeSymbols(trades),
		TimePatterns:       computeTimePatterns(trades),
		StopAnalysis:       classifyStops(trades, standardRisk, s.cfg.Report.FullStopTolerance),
		DataQuality:        dto.DataQuality{DroppedRecords: len(dropped)},
		UserReflections:    notes.Reflections(),
	}

	s.log.DebugContext(ctx, "Built trading summary",
		logger.IntField("total_trades", summary.OverallPerformance.TotalTrades),
		logger.IntField("dropped_records", len(dropped)),
		logger.Float64Field("total_pnl", summary.OverallPerformance.TotalPnl),
	)

	return summary
}
