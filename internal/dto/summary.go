package dto

import (
	"math"
	"sort"
	"strconv"
)

// ExtFloat is a float64 whose JSON encoding survives ±Inf. encoding/json
// rejects infinities outright, but "no losing trades ever" is deliberately
// represented as an infinite profit factor, so infinities encode as the
// strings "Infinity"/"-Infinity" the way Python's json module prints them.
// NaN is never produced by the pipeline; it encodes as null as a backstop.
type ExtFloat float64

func (f ExtFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(v):
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}

func (f *ExtFloat) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Infinity"`:
		*f = ExtFloat(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*f = ExtFloat(math.Inf(-1))
		return nil
	case "null":
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = ExtFloat(v)
	return nil
}

func (f ExtFloat) IsInf() bool {
	return math.IsInf(float64(f), 0)
}

type PeriodSummary struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type OverallPerformance struct {
	TotalPnl      float64  `json:"total_pnl"`
	WinRate       float64  `json:"win_rate"`
	TotalTrades   int      `json:"total_trades"`
	WinningTrades int      `json:"winning_trades"`
	LosingTrades  int      `json:"losing_trades"`
	ProfitFactor  ExtFloat `json:"profit_factor"`
}

type RiskReward struct {
	AvgWin          float64  `json:"avg_win"`
	AvgLoss         float64  `json:"avg_loss"`
	AvgWinR         float64  `json:"avg_win_r"`
	AvgLossR        float64  `json:"avg_loss_r"`
	BiggestWin      float64  `json:"biggest_win"`
	BiggestWinR     float64  `json:"biggest_win_r"`
	RewardRiskRatio ExtFloat `json:"reward_risk_ratio"`
	StandardRisk    float64  `json:"standard_risk"`
}

// SymbolPerformance is the per-instrument aggregate. AvgProfit is the mean
// over all trades for the symbol, not just winners.
type SymbolPerformance struct {
	TotalPnl   float64 `json:"total_pnl"`
	TradeCount int     `json:"trade_count"`
	WinRate    float64 `json:"win_rate"`
	AvgProfit  float64 `json:"avg_profit"`
}

// BucketStats holds the {mean,sum,count} aggregate for one hour or weekday
// bucket.
type BucketStats struct {
	Mean  float64 `json:"mean"`
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// TimePatterns holds calendar-bucketed performance. Best/worst fields are nil
// when no bucket has data, never a sentinel value.
type TimePatterns struct {
	BestHour          *int                   `json:"best_hour"`
	WorstHour         *int                   `json:"worst_hour"`
	BestDay           *string                `json:"best_day"`
	WorstDay          *string                `json:"worst_day"`
	WinDurationHours  float64                `json:"win_duration_hours"`
	LossDurationHours float64                `json:"loss_duration_hours"`
	HourlyPerformance map[int]BucketStats    `json:"hourly_performance"`
	DailyPerformance  map[string]BucketStats `json:"daily_performance"`
}

// StopAnalysis classifies losing trades against the standard risk unit: a
// full stop is a loss whose magnitude lands within the tolerance band around
// StandardRisk, everything else is a partial stop.
type StopAnalysis struct {
	FullStops    int     `json:"full_stops"`
	PartialStops int     `json:"partial_stops"`
	Tolerance    float64 `json:"tolerance"`
}

// DataQuality reports records dropped during normalization so silent data
// loss is impossible.
type DataQuality struct {
	DroppedRecords int `json:"dropped_records"`
}

type UserReflections struct {
	Strategy            []string `json:"strategy"`
	PsychologicalIssues []string `json:"psychological_issues"`
	PersonalReflection  string   `json:"personal_reflection"`
	ImprovementGoals    []string `json:"improvement_goals"`
}

// TradingSummary is the single aggregate output of the analytics pipeline.
// It is built fresh per report run, never mutated afterwards, and is both the
// LLM prompt payload and the renderer's only source of numbers.
type TradingSummary struct {
	Period             PeriodSummary                `json:"period"`
	OverallPerformance OverallPerformance           `json:"overall_performance"`
	RiskReward         RiskReward                   `json:"risk_reward"`
	Symbols            map[string]SymbolPerformance `json:"symbols"`
	TimePatterns       TimePatterns                 `json:"time_patterns"`
	StopAnalysis       StopAnalysis                 `json:"stop_analysis"`
	DataQuality        DataQuality                  `json:"data_quality"`
	UserReflections    *UserReflections             `json:"user_reflections,omitempty"`
}

// SymbolRow pairs a symbol with its aggregate for ordered display.
type SymbolRow struct {
	Symbol string
	SymbolPerformance
}

// SortedSymbols returns symbol aggregates ordered by total P&L descending,
// ties broken by symbol lexical order. Display code must use this rather
// than ranging over the Symbols map.
func (s *TradingSummary) SortedSymbols() []SymbolRow {
	rows := make([]SymbolRow, 0, len(s.Symbols))
	for symbol, perf := range s.Symbols {
		rows = append(rows, SymbolRow{Symbol: symbol, SymbolPerformance: perf})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPnl != rows[j].TotalPnl {
			return rows[i].TotalPnl > rows[j].TotalPnl
		}
		return rows[i].Symbol < rows[j].Symbol
	})
	return rows
}
