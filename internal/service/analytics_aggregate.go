package service

import (
	"math"

	"trading-report/internal/dto"
	"trading-report/pkg/utils"
)

// weekdayOrder fixes the tie-break order for best/worst day selection.
var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func computePeriod(trades []dto.NormalizedTrade) dto.PeriodSummary {
	if len(trades) == 0 {
		return dto.PeriodSummary{}
	}

	earliest, latest := trades[0].CreatedTime, trades[0].CreatedTime
	for _, t := range trades[1:] {
		if t.CreatedTime.Before(earliest) {
			earliest = t.CreatedTime
		}
		if t.CreatedTime.After(latest) {
			latest = t.CreatedTime
		}
	}

	return dto.PeriodSummary{
		Start: utils.FormatDate(earliest),
		End:   utils.FormatDate(latest),
		Days:  utils.DaysInclusive(earliest, latest),
	}
}

// computeOverall computes the scalar performance block. Zero-P&L trades count
// toward TotalTrades but neither WinningTrades nor LosingTrades, so
// winning+losing <= total with equality only when no trade closed flat.
func computeOverall(trades []dto.NormalizedTrade) dto.OverallPerformance {
	var totalPnl, grossProfit, grossLoss float64
	var wins, losses int

	for _, t := range trades {
		totalPnl += t.ClosedPnl
		switch {
		case t.ClosedPnl > 0:
			wins++
			grossProfit += t.ClosedPnl
		case t.ClosedPnl < 0:
			losses++
			grossLoss += t.ClosedPnl
		}
	}

	winRate := 0.0
	if len(trades) > 0 {
		winRate = float64(wins) / float64(len(trades))
	}

	// Profit factor degenerates to +Inf with profits but no losses, and to 0
	// when both gross sums are zero, so NaN never reaches the output.
	var profitFactor dto.ExtFloat
	switch {
	case grossLoss != 0:
		profitFactor = dto.ExtFloat(math.Abs(grossProfit / grossLoss))
	case grossProfit > 0:
		profitFactor = dto.ExtFloat(math.Inf(1))
	default:
		profitFactor = 0
	}

	return dto.OverallPerformance{
		TotalPnl:      totalPnl,
		WinRate:       winRate,
		TotalTrades:   len(trades),
		WinningTrades: wins,
		LosingTrades:  losses,
		ProfitFactor:  profitFactor,
	}
}

// computeSymbols groups trades by exact symbol string. Case and whitespace
// are not normalized; the exchange is trusted to emit canonical symbols.
func computeSymbols(trades []dto.NormalizedTrade) map[string]dto.SymbolPerformance {
	type acc struct {
		totalPnl float64
		count    int
		wins     int
	}

	accs := make(map[string]*acc)
	for _, t := range trades {
		a, ok := accs[t.Symbol]
		if !ok {
			a = &acc{}
			accs[t.Symbol] = a
		}
		a.totalPnl += t.ClosedPnl
		a.count++
		if t.IsProfitable {
			a.wins++
		}
	}

	symbols := make(map[string]dto.SymbolPerformance, len(accs))
	for symbol, a := range accs {
		symbols[symbol] = dto.SymbolPerformance{
			TotalPnl:   a.totalPnl,
			TradeCount: a.count,
			WinRate:    float64(a.wins) / float64(a.count),
			AvgProfit:  a.totalPnl / float64(a.count),
		}
	}
	return symbols
}

func computeTimePatterns(trades []dto.NormalizedTrade) dto.TimePatterns {
	hourSums := make(map[int]float64)
	hourCounts := make(map[int]int)
	daySums := make(map[string]float64)
	dayCounts := make(map[string]int)

	var winDurationSum, lossDurationSum float64
	var winCount, lossCount int

	for _, t := range trades {
		hourSums[t.HourOfDay] += t.ClosedPnl
		hourCounts[t.HourOfDay]++
		daySums[t.DayOfWeek] += t.ClosedPnl
		dayCounts[t.DayOfWeek]++

		switch {
		case t.ClosedPnl > 0:
			winDurationSum += t.DurationHours
			winCount++
		case t.ClosedPnl < 0:
			lossDurationSum += t.DurationHours
			lossCount++
		}
	}

	hourly := make(map[int]dto.BucketStats, len(hourCounts))
	for hour, count := range hourCounts {
		hourly[hour] = dto.BucketStats{
			Mean:  hourSums[hour] / float64(count),
			Sum:   hourSums[hour],
			Count: count,
		}
	}

	daily := make(map[string]dto.BucketStats, len(dayCounts))
	for day, count := range dayCounts {
		daily[day] = dto.BucketStats{
			Mean:  daySums[day] / float64(count),
			Sum:   daySums[day],
			Count: count,
		}
	}

	patterns := dto.TimePatterns{
		HourlyPerformance: hourly,
		DailyPerformance:  daily,
	}

	// Argmax/argmin over populated buckets only; ties resolve to the smaller
	// hour index and the Monday-first weekday respectively. Empty input keeps
	// all four fields nil rather than a sentinel.
	for hour := 0; hour < 24; hour++ {
		stats, ok := hourly[hour]
		if !ok {
			continue
		}
		if patterns.BestHour == nil || stats.Mean > hourly[*patterns.BestHour].Mean {
			patterns.BestHour = utils.ToPointer(hour)
		}
		if patterns.WorstHour == nil || stats.Mean < hourly[*patterns.WorstHour].Mean {
			patterns.WorstHour = utils.ToPointer(hour)
		}
	}

	for _, day := range weekdayOrder {
		stats, ok := daily[day]
		if !ok {
			continue
		}
		if patterns.BestDay == nil || stats.Mean > daily[*patterns.BestDay].Mean {
			patterns.BestDay = utils.ToPointer(day)
		}
		if patterns.WorstDay == nil || stats.Mean < daily[*patterns.WorstDay].Mean {
			patterns.WorstDay = utils.ToPointer(day)
		}
	}

	// Mean durations default to 0 when a side has no trades. This is a
	// convention for display, distinct from a genuine 0-duration mean;
	// consumers needing the difference must check the win/loss counts.
	if winCount > 0 {
		patterns.WinDurationHours = winDurationSum / float64(winCount)
	}
	if lossCount > 0 {
		patterns.LossDurationHours = lossDurationSum / float64(lossCount)
	}

	return patterns
}
