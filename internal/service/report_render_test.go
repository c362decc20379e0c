package service

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-report/internal/dto"
	"trading-report/pkg/utils"
)

func sampleSummary() dto.TradingSummary {
	return dto.TradingSummary{
		Period: dto.PeriodSummary{Start: "2024-03-01", End: "2024-03-07", Days: 7},
		OverallPerformance: dto.OverallPerformance{
			TotalPnl:      55.5,
			WinRate:       0.6,
			TotalTrades:   5,
			WinningTrades: 3,
			LosingTrades:  2,
			ProfitFactor:  2.4,
		},
		RiskReward: dto.RiskReward{
			AvgWin:          30,
			AvgLoss:         -12,
			AvgWinR:         3.33,
			AvgLossR:        1.33,
			BiggestWin:      45,
			BiggestWinR:     5,
			RewardRiskRatio: 2.5,
			StandardRisk:    9,
		},
		Symbols: map[string]dto.SymbolPerformance{
			"BTCUSDT": {TotalPnl: 60, TradeCount: 3, WinRate: 1, AvgProfit: 20},
			"ETHUSDT": {TotalPnl: -4.5, TradeCount: 2, WinRate: 0, AvgProfit: -2.25},
		},
		TimePatterns: dto.TimePatterns{
			BestHour:          utils.ToPointer(9),
			WorstHour:         utils.ToPointer(14),
			BestDay:           utils.ToPointer("Monday"),
			WorstDay:          utils.ToPointer("Friday"),
			WinDurationHours:  2.5,
			LossDurationHours: 6.0,
			HourlyPerformance: map[int]dto.BucketStats{9: {Mean: 20, Sum: 60, Count: 3}},
			DailyPerformance:  map[string]dto.BucketStats{"Monday": {Mean: 20, Sum: 60, Count: 3}},
		},
		StopAnalysis: dto.StopAnalysis{FullStops: 1, PartialStops: 1, Tolerance: 0.05},
		DataQuality:  dto.DataQuality{DroppedRecords: 1},
	}
}

func TestRenderReportHTML(t *testing.T) {
	dir := t.TempDir()
	analysis := &dto.AIAnalysis{
		KeyStrengths: []string{"consistent sizing"},
	}

	path, err := renderReportHTML(dir, sampleSummary(), analysis, time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.FileExists(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Trading Performance Report")
	assert.Contains(t, html, "2024-03-01")
	assert.Contains(t, html, "BTCUSDT")
	assert.Contains(t, html, "ETHUSDT")
	assert.Contains(t, html, "consistent sizing")
	assert.Contains(t, html, "09:00")
	assert.Contains(t, html, "Monday")
	assert.Contains(t, html, "1 malformed record(s)")
	// BTCUSDT leads the symbol table.
	assert.Less(t, strings.Index(html, "BTCUSDT"), strings.Index(html, "ETHUSDT"))
}

func TestRenderReportHTML_NoAnalysis(t *testing.T) {
	dir := t.TempDir()

	path, err := renderReportHTML(dir, sampleSummary(), nil, time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "AI Assessment")
}

func TestBuildRecommendations(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(s *dto.TradingSummary)
		wantContains string
		wantEmpty    bool
	}{
		{
			name:      "no trades yields no recommendations",
			mutate:    func(s *dto.TradingSummary) { s.OverallPerformance.TotalTrades = 0 },
			wantEmpty: true,
		},
		{
			name:         "low win rate flagged",
			mutate:       func(s *dto.TradingSummary) { s.OverallPerformance.WinRate = 0.4 },
			wantContains: "Win rate is 40.0%",
		},
		{
			name:         "long losing holds flagged",
			mutate:       func(s *dto.TradingSummary) {},
			wantContains: "held too long",
		},
		{
			name: "inconsistent stops flagged",
			mutate: func(s *dto.TradingSummary) {
				s.StopAnalysis = dto.StopAnalysis{FullStops: 0, PartialStops: 3, Tolerance: 0.05}
			},
			wantContains: "Stop placement looks inconsistent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := sampleSummary()
			tt.mutate(&summary)

			recs := buildRecommendations(summary)

			if tt.wantEmpty {
				assert.Empty(t, recs)
				return
			}
			joined := ""
			for _, r := range recs {
				joined += r + "\n"
			}
			assert.Contains(t, joined, tt.wantContains)
		})
	}
}
