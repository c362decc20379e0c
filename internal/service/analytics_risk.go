package service

import (
	"math"

	"trading-report/internal/dto"
)

// computeRiskReward expresses the win/loss averages in dollars and in
// R-multiples of standardRisk. All R values guard standardRisk <= 0 by
// resolving to 0 instead of dividing.
func computeRiskReward(trades []dto.NormalizedTrade, standardRisk float64) dto.RiskReward {
	var winSum, lossSum, biggestWin float64
	var winCount, lossCount int

	for _, t := range trades {
		switch {
		case t.ClosedPnl > 0:
			winSum += t.ClosedPnl
			winCount++
			if t.ClosedPnl > biggestWin {
				biggestWin = t.ClosedPnl
			}
		case t.ClosedPnl < 0:
			lossSum += t.ClosedPnl
			lossCount++
		}
	}

	var avgWin, avgLoss float64
	if winCount > 0 {
		avgWin = winSum / float64(winCount)
	}
	if lossCount > 0 {
		avgLoss = lossSum / float64(lossCount) // signed negative
	}

	rr := dto.RiskReward{
		AvgWin:       avgWin,
		AvgLoss:      avgLoss,
		BiggestWin:   biggestWin,
		StandardRisk: standardRisk,
	}

	if standardRisk > 0 {
		rr.AvgWinR = avgWin / standardRisk
		rr.AvgLossR = math.Abs(avgLoss) / standardRisk
		rr.BiggestWinR = biggestWin / standardRisk
	}

	switch {
	case avgLoss != 0:
		rr.RewardRiskRatio = dto.ExtFloat(math.Abs(avgWin / avgLoss))
	case avgWin > 0:
		rr.RewardRiskRatio = dto.ExtFloat(math.Inf(1))
	default:
		rr.RewardRiskRatio = 0
	}

	return rr
}

// classifyStops splits losing trades into full and partial stops. A full
// stop is a loss whose magnitude lands within the inclusive band
// [(1-tolerance)*standardRisk, (1+tolerance)*standardRisk]; the band is a
// heuristic for "the stop-loss executed at the intended size". With
// standardRisk = 0 the band degenerates to [0,0] and every loss is partial.
func classifyStops(trades []dto.NormalizedTrade, standardRisk, tolerance float64) dto.StopAnalysis {
	lower := standardRisk * (1 - tolerance)
	upper := standardRisk * (1 + tolerance)

	analysis := dto.StopAnalysis{Tolerance: tolerance}
	for _, t := range trades {
		if t.ClosedPnl >= 0 {
			continue
		}
		magnitude := math.Abs(t.ClosedPnl)
		if magnitude >= lower && magnitude <= upper {
			analysis.FullStops++
		} else {
			analysis.PartialStops++
		}
	}
	return analysis
}
