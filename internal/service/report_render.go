package service

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"time"

	"trading-report/internal/dto"
)

type reportPage struct {
	GeneratedAt     string
	PeriodStart     string
	PeriodEnd       string
	PeriodDays      int
	Overall         dto.OverallPerformance
	ProfitFactor    string
	RiskReward      dto.RiskReward
	RewardRisk      string
	Symbols         []dto.SymbolRow
	Time            dto.TimePatterns
	BestHour        string
	WorstHour       string
	BestDay         string
	WorstDay        string
	Stops           dto.StopAnalysis
	Dropped         int
	Recommendations []string
	Reflections     *dto.UserReflections
	Analysis        *dto.AIAnalysis
	PnlClass        func(v float64) string
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": func(v float64) float64 { return v * 100 },
}).Parse(reportTemplateHTML))

// renderReportHTML renders the summary into a self-contained HTML document and
// writes it under outputDir. The returned path is the written file.
func renderReportHTML(outputDir string, summary dto.TradingSummary, analysis *dto.AIAnalysis, now time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	page := reportPage{
		GeneratedAt:     now.Format("2006-01-02 15:04:05 MST"),
		PeriodStart:     summary.Period.Start,
		PeriodEnd:       summary.Period.End,
		PeriodDays:      summary.Period.Days,
		Overall:         summary.OverallPerformance,
		ProfitFactor:    formatExtFloat(summary.OverallPerformance.ProfitFactor),
		RiskReward:      summary.RiskReward,
		RewardRisk:      formatExtFloat(summary.RiskReward.RewardRiskRatio),
		Symbols:         summary.SortedSymbols(),
		Time:            summary.TimePatterns,
		BestHour:        formatHour(summary.TimePatterns.BestHour),
		WorstHour:       formatHour(summary.TimePatterns.WorstHour),
		BestDay:         formatDay(summary.TimePatterns.BestDay),
		WorstDay:        formatDay(summary.TimePatterns.WorstDay),
		Stops:           summary.StopAnalysis,
		Dropped:         summary.DataQuality.DroppedRecords,
		Recommendations: buildRecommendations(summary),
		Reflections:     summary.UserReflections,
		Analysis:        analysis,
		PnlClass: func(v float64) string {
			if v < 0 {
				return "neg"
			}
			return "pos"
		},
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	path := reportFilePath(outputDir, now)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// reportFilePath is deterministic in (outputDir, now) so callers can know the
// destination before the render finishes.
func reportFilePath(outputDir string, now time.Time) string {
	name := fmt.Sprintf("trading_report_%s.html", now.Format("2006-01-02_150405"))
	return filepath.Join(outputDir, name)
}

func formatExtFloat(v dto.ExtFloat) string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "∞"
	case math.IsInf(f, -1):
		return "-∞"
	case math.IsNaN(f):
		return "n/a"
	default:
		return fmt.Sprintf("%.2f", f)
	}
}

func formatHour(h *int) string {
	if h == nil {
		return "n/a"
	}
	return fmt.Sprintf("%02d:00", *h)
}

func formatDay(d *string) string {
	if d == nil {
		return "n/a"
	}
	return *d
}

// buildRecommendations derives simple, deterministic suggestions from the
// aggregate numbers. No model involvement, so they are available even when
// the AI step is skipped.
func buildRecommendations(summary dto.TradingSummary) []string {
	var recs []string

	if summary.OverallPerformance.TotalTrades == 0 {
		return recs
	}

	if summary.OverallPerformance.WinRate < 0.5 {
		recs = append(recs, fmt.Sprintf(
			"Win rate is %.1f%%. Review entry criteria before increasing size.",
			summary.OverallPerformance.WinRate*100))
	}

	symbols := summary.SortedSymbols()
	if len(symbols) > 1 {
		best := symbols[0]
		worst := symbols[len(symbols)-1]
		if best.TotalPnl > 0 && worst.TotalPnl < 0 {
			recs = append(recs, fmt.Sprintf(
				"%s contributed %+.2f while %s lost %.2f. Consider concentrating on what works.",
				best.Symbol, best.TotalPnl, worst.Symbol, worst.TotalPnl))
		}
	}

	if summary.TimePatterns.BestHour != nil && summary.TimePatterns.WorstHour != nil &&
		*summary.TimePatterns.BestHour != *summary.TimePatterns.WorstHour {
		recs = append(recs, fmt.Sprintf(
			"Entries around %02d:00 performed best, around %02d:00 worst. Check whether the worst hour overlaps low-liquidity sessions.",
			*summary.TimePatterns.BestHour, *summary.TimePatterns.WorstHour))
	}

	win := summary.TimePatterns.WinDurationHours
	loss := summary.TimePatterns.LossDurationHours
	if loss > 0 && win > 0 && loss > win*1.5 {
		recs = append(recs, fmt.Sprintf(
			"Losing trades were held %.1fh on average vs %.1fh for winners. Losses may be held too long.",
			loss, win))
	}

	if summary.StopAnalysis.PartialStops > summary.StopAnalysis.FullStops && summary.StopAnalysis.PartialStops > 0 {
		recs = append(recs, "Most losses land outside the standard stop band. Stop placement looks inconsistent.")
	}

	return recs
}

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Trading Performance Report</title>
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; background: #0f1419; color: #e6e6e6; margin: 0; padding: 24px; }
h1, h2 { color: #f0b90b; }
.card { background: #1b2028; border-radius: 8px; padding: 16px 20px; margin-bottom: 20px; }
.grid { display: flex; flex-wrap: wrap; gap: 16px; }
.metric { flex: 1 1 160px; background: #232a35; border-radius: 6px; padding: 12px; text-align: center; }
.metric .value { font-size: 1.4em; font-weight: 600; }
.pos { color: #2ebd85; }
.neg { color: #f6465d; }
table { border-collapse: collapse; width: 100%; }
th, td { padding: 8px 10px; border-bottom: 1px solid #2c3440; text-align: right; }
th:first-child, td:first-child { text-align: left; }
th { color: #8b949e; font-weight: 500; }
ul { margin: 8px 0; padding-left: 20px; }
.muted { color: #8b949e; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Trading Performance Report</h1>
<p class="muted">{{.PeriodStart}} – {{.PeriodEnd}} ({{.PeriodDays}} days) · generated {{.GeneratedAt}}</p>

<div class="card">
<h2>Overall Performance</h2>
<div class="grid">
<div class="metric"><div class="value {{call .PnlClass .Overall.TotalPnl}}">{{printf "%+.2f" .Overall.TotalPnl}}</div><div>Total PnL (USDT)</div></div>
<div class="metric"><div class="value">{{printf "%.1f%%" (pct .Overall.WinRate)}}</div><div>Win Rate</div></div>
<div class="metric"><div class="value">{{.Overall.TotalTrades}}</div><div>Trades</div></div>
<div class="metric"><div class="value pos">{{.Overall.WinningTrades}}</div><div>Wins</div></div>
<div class="metric"><div class="value neg">{{.Overall.LosingTrades}}</div><div>Losses</div></div>
<div class="metric"><div class="value">{{.ProfitFactor}}</div><div>Profit Factor</div></div>
</div>
</div>

<div class="card">
<h2>Risk / Reward</h2>
<div class="grid">
<div class="metric"><div class="value pos">{{printf "%.2f" .RiskReward.AvgWin}}</div><div>Avg Win</div></div>
<div class="metric"><div class="value neg">{{printf "%.2f" .RiskReward.AvgLoss}}</div><div>Avg Loss</div></div>
<div class="metric"><div class="value">{{printf "%.2fR" .RiskReward.AvgWinR}}</div><div>Avg Win (R)</div></div>
<div class="metric"><div class="value">{{printf "%.2fR" .RiskReward.AvgLossR}}</div><div>Avg Loss (R)</div></div>
<div class="metric"><div class="value">{{.RewardRisk}}</div><div>Reward : Risk</div></div>
<div class="metric"><div class="value pos">{{printf "%+.2f" .RiskReward.BiggestWin}}</div><div>Biggest Win</div></div>
</div>
<p class="muted">Standard risk per trade: {{printf "%.2f" .RiskReward.StandardRisk}} USDT · full stops {{.Stops.FullStops}}, partial stops {{.Stops.PartialStops}} (tolerance {{printf "%.0f%%" (pct .Stops.Tolerance)}})</p>
</div>

<div class="card">
<h2>Symbol Performance</h2>
<table>
<tr><th>Symbol</th><th>PnL</th><th>Trades</th><th>Win Rate</th><th>Avg PnL</th></tr>
{{range .Symbols}}
<tr><td>{{.Symbol}}</td><td class="{{call $.PnlClass .TotalPnl}}">{{printf "%+.2f" .TotalPnl}}</td><td>{{.TradeCount}}</td><td>{{printf "%.1f%%" (pct .WinRate)}}</td><td class="{{call $.PnlClass .AvgProfit}}">{{printf "%+.2f" .AvgProfit}}</td></tr>
{{end}}
</table>
</div>

<div class="card">
<h2>Time Patterns</h2>
<div class="grid">
<div class="metric"><div class="value">{{.BestHour}}</div><div>Best Entry Hour</div></div>
<div class="metric"><div class="value">{{.WorstHour}}</div><div>Worst Entry Hour</div></div>
<div class="metric"><div class="value">{{.BestDay}}</div><div>Best Day</div></div>
<div class="metric"><div class="value">{{.WorstDay}}</div><div>Worst Day</div></div>
<div class="metric"><div class="value">{{printf "%.1fh" .Time.WinDurationHours}}</div><div>Avg Win Hold</div></div>
<div class="metric"><div class="value">{{printf "%.1fh" .Time.LossDurationHours}}</div><div>Avg Loss Hold</div></div>
</div>
</div>

{{if .Recommendations}}
<div class="card">
<h2>Observations</h2>
<ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul>
</div>
{{end}}

{{if .Reflections}}
<div class="card">
<h2>Trader Notes</h2>
{{if .Reflections.Strategy}}<h3>Strategy</h3><ul>{{range .Reflections.Strategy}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Reflections.PsychologicalIssues}}<h3>Psychology</h3><ul>{{range .Reflections.PsychologicalIssues}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Reflections.PersonalReflection}}<h3>Reflection</h3><p>{{.Reflections.PersonalReflection}}</p>{{end}}
{{if .Reflections.ImprovementGoals}}<h3>Improvement Goals</h3><ul>{{range .Reflections.ImprovementGoals}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}

{{if .Analysis}}
<div class="card">
<h2>AI Assessment</h2>
{{if .Analysis.RawAnalysis}}<p>{{.Analysis.RawAnalysis}}</p>{{else}}
{{if .Analysis.OverallPerformanceAssessment}}<h3>Overall</h3><ul>{{range .Analysis.OverallPerformanceAssessment}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Analysis.StrategyEffectiveness}}<h3>Strategy Effectiveness</h3><ul>{{range .Analysis.StrategyEffectiveness}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Analysis.PsychologicalPatterns}}<h3>Psychological Patterns</h3><ul>{{range .Analysis.PsychologicalPatterns}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Analysis.RiskManagementAnalysis}}<h3>Risk Management</h3><ul>{{range .Analysis.RiskManagementAnalysis}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Analysis.KeyStrengths}}<h3>Key Strengths</h3><ul>{{range .Analysis.KeyStrengths}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Analysis.AreasForImprovement}}<h3>Areas For Improvement</h3><ul>{{range .Analysis.AreasForImprovement}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Analysis.ActionableRecommendations}}<h3>Recommendations</h3><ul>{{range .Analysis.ActionableRecommendations}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{end}}
</div>
{{end}}

{{if .Dropped}}<p class="muted">{{.Dropped}} malformed record(s) were dropped during normalization.</p>{{end}}
</body>
</html>`
