package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-report/internal/dto"
)

func TestBuildAnalyzerPrompt(t *testing.T) {
	summary := dto.TradingSummary{
		OverallPerformance: dto.OverallPerformance{TotalPnl: 42.5, TotalTrades: 7},
	}

	prompt, err := buildAnalyzerPrompt(summary, nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "1. Overall Performance Assessment")
	assert.Contains(t, prompt, "7. Actionable Recommendations")
	assert.Contains(t, prompt, `"total_pnl": 42.5`)
	assert.Contains(t, prompt, "None provided")
}

func TestBuildAnalyzerPrompt_WithNotes(t *testing.T) {
	notes := &dto.UserNotes{
		Strategy:   []string{"mean reversion on 4h"},
		Reflection: "too many impulse entries",
	}

	prompt, err := buildAnalyzerPrompt(dto.TradingSummary{}, notes)
	require.NoError(t, err)

	assert.Contains(t, prompt, "mean reversion on 4h")
	assert.Contains(t, prompt, "too many impulse entries")
	assert.NotContains(t, prompt, "None provided")
}

func TestBuildAnalyzerPrompt_Deterministic(t *testing.T) {
	summary := dto.TradingSummary{
		OverallPerformance: dto.OverallPerformance{TotalPnl: 10},
		Symbols: map[string]dto.SymbolPerformance{
			"BTCUSDT": {TotalPnl: 10, TradeCount: 1},
			"ETHUSDT": {TotalPnl: -2, TradeCount: 2},
		},
	}

	first, err := buildAnalyzerPrompt(summary, nil)
	require.NoError(t, err)
	second, err := buildAnalyzerPrompt(summary, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
