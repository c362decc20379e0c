package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"trading-report/internal/dto"
)

func TestComputeRiskReward(t *testing.T) {
	tests := []struct {
		name         string
		trades       []dto.NormalizedTrade
		standardRisk float64
		want         dto.RiskReward
		wantInfRatio bool
	}{
		{
			name:         "empty input",
			trades:       nil,
			standardRisk: 9,
			want:         dto.RiskReward{StandardRisk: 9},
		},
		{
			name: "averages in dollars and R multiples",
			trades: []dto.NormalizedTrade{
				trade("BTCUSDT", 18),
				trade("BTCUSDT", 18),
				trade("BTCUSDT", -9),
			},
			standardRisk: 9,
			want: dto.RiskReward{
				AvgWin:          18,
				AvgLoss:         -9,
				AvgWinR:         2,
				AvgLossR:        1,
				BiggestWin:      18,
				BiggestWinR:     2,
				RewardRiskRatio: 2,
				StandardRisk:    9,
			},
		},
		{
			name: "wins without losses degenerate to infinity",
			trades: []dto.NormalizedTrade{
				trade("BTCUSDT", 9),
			},
			standardRisk: 9,
			want: dto.RiskReward{
				AvgWin:       9,
				AvgWinR:      1,
				BiggestWin:   9,
				BiggestWinR:  1,
				StandardRisk: 9,
			},
			wantInfRatio: true,
		},
		{
			name: "zero standard risk disables R multiples",
			trades: []dto.NormalizedTrade{
				trade("BTCUSDT", 10),
				trade("BTCUSDT", -5),
			},
			standardRisk: 0,
			want: dto.RiskReward{
				AvgWin:          10,
				AvgLoss:         -5,
				BiggestWin:      10,
				RewardRiskRatio: 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeRiskReward(tt.trades, tt.standardRisk)

			if tt.wantInfRatio {
				assert.True(t, math.IsInf(float64(got.RewardRiskRatio), 1))
				got.RewardRiskRatio = 0
				tt.want.RewardRiskRatio = 0
			}
			assert.InDelta(t, tt.want.AvgWin, got.AvgWin, 1e-9)
			assert.InDelta(t, tt.want.AvgLoss, got.AvgLoss, 1e-9)
			assert.InDelta(t, tt.want.AvgWinR, got.AvgWinR, 1e-9)
			assert.InDelta(t, tt.want.AvgLossR, got.AvgLossR, 1e-9)
			assert.InDelta(t, tt.want.BiggestWin, got.BiggestWin, 1e-9)
			assert.InDelta(t, tt.want.BiggestWinR, got.BiggestWinR, 1e-9)
			assert.InDelta(t, float64(tt.want.RewardRiskRatio), float64(got.RewardRiskRatio), 1e-9)
			assert.Equal(t, tt.want.StandardRisk, got.StandardRisk)
		})
	}
}

func TestClassifyStops_InclusiveBand(t *testing.T) {
	// standardRisk=10, tolerance=5% gives a [9.5, 10.5] band, both ends in.
	trades := []dto.NormalizedTrade{
		trade("BTCUSDT", -9.5),
		trade("BTCUSDT", -9.49),
		trade("BTCUSDT", -10.0),
		trade("BTCUSDT", -10.5),
		trade("BTCUSDT", -10.51),
		trade("BTCUSDT", 5),
		trade("BTCUSDT", 0),
	}

	got := classifyStops(trades, 10, 0.05)

	assert.Equal(t, 3, got.FullStops)
	assert.Equal(t, 2, got.PartialStops)
	assert.Equal(t, 0.05, got.Tolerance)
}

func TestClassifyStops_ZeroStandardRisk(t *testing.T) {
	trades := []dto.NormalizedTrade{
		trade("BTCUSDT", -3),
		trade("BTCUSDT", -10),
	}

	got := classifyStops(trades, 0, 0.05)

	assert.Equal(t, 0, got.FullStops)
	assert.Equal(t, 2, got.PartialStops)
}

func TestClassifyStops_NoLosses(t *testing.T) {
	trades := []dto.NormalizedTrade{
		trade("BTCUSDT", 4),
		trade("BTCUSDT", 0),
	}

	got := classifyStops(trades, 9, 0.05)

	assert.Equal(t, 0, got.FullStops)
	assert.Equal(t, 0, got.PartialStops)
}
