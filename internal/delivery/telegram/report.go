package telegram

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gopkg.in/telebot.v3"

	"trading-report/internal/dto"
	"trading-report/pkg/logger"
	"trading-report/pkg/utils"
)

const maxSymbolsInMessage = 10

func (t *TelegramBotHandler) handleReport(ctx context.Context, c telebot.Context) error {
	start, end := t.service.ReportService.DefaultWindow(time.Now())
	_, errSend := t.telegram.Send(ctx, c, fmt.Sprintf("⏳ Crunching your closed trades from %s to %s, this can take a minute...",
		utils.PrettyDate(start), utils.PrettyDate(end)))
	if errSend != nil {
		t.log.ErrorContext(ctx, "Failed to send progress message", logger.ErrorField(errSend))
	}

	result, err := t.service.ReportService.Generate(ctx, dto.GenerateReportParam{Start: start, End: end})
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to generate report", logger.ErrorField(err))
		_, errSend := t.telegram.Send(ctx, c, "⚠️ Could not generate the report, please try again later.")
		if errSend != nil {
			t.log.ErrorContext(ctx, "Failed to send error message", logger.ErrorField(errSend))
		}
		return err
	}

	if result.Summary.OverallPerformance.TotalTrades == 0 {
		_, errSend := t.telegram.Send(ctx, c, "📭 No closed trades in the selected window.")
		return errSend
	}

	_, errSend = t.telegram.Send(ctx, c, formatReportMessage(result), telebot.ModeHTML)
	return errSend
}

func formatReportMessage(result *dto.ReportResult) string {
	summary := result.Summary

	sb := &strings.Builder{}
	sb.WriteString("📊 <b>Trading Report</b>\n")
	sb.WriteString(fmt.Sprintf("%s – %s (%d days)\n",
		summary.Period.Start,
		summary.Period.End,
		summary.Period.Days))

	icon := "🟢"
	if summary.OverallPerformance.TotalPnl < 0 {
		icon = "🔴"
	}
	sb.WriteString(fmt.Sprintf("\n%s <b>Total PnL</b>: %+.2f USDT", icon, summary.OverallPerformance.TotalPnl))
	sb.WriteString(fmt.Sprintf("\n🏆 <b>Win Rate</b>: %.1f%% (%d/%d)",
		summary.OverallPerformance.WinRate*100, summary.OverallPerformance.WinningTrades, summary.OverallPerformance.TotalTrades))
	sb.WriteString(fmt.Sprintf("\n⚖️ <b>Profit Factor</b>: %s", formatRatio(summary.OverallPerformance.ProfitFactor)))
	sb.WriteString(fmt.Sprintf("\n🎯 <b>Reward:Risk</b>: %s", formatRatio(summary.RiskReward.RewardRiskRatio)))
	sb.WriteString(fmt.Sprintf("\n🛑 <b>Stops</b>: %d full / %d partial",
		summary.StopAnalysis.FullStops, summary.StopAnalysis.PartialStops))

	symbols := summary.SortedSymbols()
	if len(symbols) > 0 {
		sb.WriteString("\n\n🔎 <b>By Symbol</b>:")
		for i, row := range symbols {
			if i >= maxSymbolsInMessage {
				sb.WriteString(fmt.Sprintf("\n… and %d more", len(symbols)-maxSymbolsInMessage))
				break
			}
			rowIcon := "🟢"
			if row.TotalPnl < 0 {
				rowIcon = "🔴"
			}
			sb.WriteString(fmt.Sprintf("\n%s %s: %+.2f (%d trades, %.0f%% win)",
				rowIcon, row.Symbol, row.TotalPnl, row.TradeCount, row.WinRate*100))
		}
	}

	if summary.TimePatterns.BestHour != nil {
		sb.WriteString(fmt.Sprintf("\n\n🕐 Best entry hour: %02d:00", *summary.TimePatterns.BestHour))
	}
	if summary.TimePatterns.BestDay != nil {
		sb.WriteString(fmt.Sprintf("\n📅 Best day: %s", *summary.TimePatterns.BestDay))
	}

	if summary.DataQuality.DroppedRecords > 0 {
		sb.WriteString(fmt.Sprintf("\n\n⚠️ %d malformed record(s) dropped", summary.DataQuality.DroppedRecords))
	}

	if result.HTMLPath != "" {
		sb.WriteString(fmt.Sprintf("\n\n📄 Full report: <code>%s</code>", result.HTMLPath))
	}

	return sb.String()
}

func formatRatio(v dto.ExtFloat) string {
	f := float64(v)
	if math.IsInf(f, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", f)
}
