package dto

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtFloat_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value ExtFloat
		want  string
	}{
		{name: "finite value", value: 2.5, want: "2.5"},
		{name: "positive infinity", value: ExtFloat(math.Inf(1)), want: `"Infinity"`},
		{name: "negative infinity", value: ExtFloat(math.Inf(-1)), want: `"-Infinity"`},
		{name: "nan encodes as null", value: ExtFloat(math.NaN()), want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestExtFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantInf int
		want    float64
	}{
		{name: "finite value", input: "3.25", want: 3.25},
		{name: "positive infinity", input: `"Infinity"`, wantInf: 1},
		{name: "negative infinity", input: `"-Infinity"`, wantInf: -1},
		{name: "null resets to zero", input: "null", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ExtFloat
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			if tt.wantInf != 0 {
				assert.True(t, math.IsInf(float64(got), tt.wantInf))
			} else {
				assert.Equal(t, tt.want, float64(got))
			}
		})
	}
}

func TestExtFloat_RoundTripInsideSummary(t *testing.T) {
	summary := TradingSummary{
		OverallPerformance: OverallPerformance{ProfitFactor: ExtFloat(math.Inf(1))},
		RiskReward:         RiskReward{RewardRiskRatio: 1.5},
	}

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"profit_factor":"Infinity"`)

	var decoded TradingSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, math.IsInf(float64(decoded.OverallPerformance.ProfitFactor), 1))
	assert.Equal(t, ExtFloat(1.5), decoded.RiskReward.RewardRiskRatio)
}

func TestTradingSummary_SortedSymbols(t *testing.T) {
	summary := TradingSummary{
		Symbols: map[string]SymbolPerformance{
			"ETHUSDT": {TotalPnl: 5},
			"BTCUSDT": {TotalPnl: 20},
			"XRPUSDT": {TotalPnl: 5},
			"SOLUSDT": {TotalPnl: -3},
		},
	}

	rows := summary.SortedSymbols()
	require.Len(t, rows, 4)

	symbols := make([]string, 0, len(rows))
	for _, row := range rows {
		symbols = append(symbols, row.Symbol)
	}
	// PnL descending; the 5.0 tie resolves lexically.
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT", "XRPUSDT", "SOLUSDT"}, symbols)
}

func TestUserNotes_Reflections(t *testing.T) {
	var nilNotes *UserNotes
	assert.Nil(t, nilNotes.Reflections())

	notes := &UserNotes{Strategy: []string{"trend following"}, Reflection: "ok"}
	got := notes.Reflections()
	require.NotNil(t, got)
	assert.Equal(t, []string{"trend following"}, got.Strategy)
	assert.Equal(t, "ok", got.PersonalReflection)
}
