package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"trading-report/internal/dto"
	"trading-report/internal/repository"
	"trading-report/internal/service"
)

var (
	reportStart  string
	reportEnd    string
	reportDays   int
	reportSkipAI bool
	reportNotes  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a single trading report and print the summary",
	Run:   RunReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start", "", "window start (RFC3339), requires --end")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "window end (RFC3339), requires --start")
	reportCmd.Flags().IntVar(&reportDays, "days", 0, "lookback days ending now, overrides config")
	reportCmd.Flags().BoolVar(&reportSkipAI, "skip-ai", false, "skip the AI assessment")
	reportCmd.Flags().StringVar(&reportNotes, "notes", "", "path to a JSON file with trader notes")
}

func RunReport(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewReportDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.cache, nil, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo)

	param := dto.GenerateReportParam{SkipAI: reportSkipAI}

	if (reportStart == "") != (reportEnd == "") {
		log.Fatal("--start and --end must be provided together")
	}
	switch {
	case reportStart != "":
		param.Start, err = time.Parse(time.RFC3339, reportStart)
		if err != nil {
			log.Fatalf("Invalid --start: %v", err)
		}
		param.End, err = time.Parse(time.RFC3339, reportEnd)
		if err != nil {
			log.Fatalf("Invalid --end: %v", err)
		}
	case reportDays > 0:
		param.End = time.Now()
		param.Start = param.End.AddDate(0, 0, -reportDays)
	}

	if reportNotes != "" {
		param.UserNotes, err = loadUserNotes(reportNotes)
		if err != nil {
			log.Fatalf("Failed to load notes: %v", err)
		}
	}

	result, err := services.ReportService.Generate(ctx, param)
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	printReport(result)
}

func loadUserNotes(path string) (*dto.UserNotes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	notes := &dto.UserNotes{}
	if err := json.Unmarshal(data, notes); err != nil {
		return nil, fmt.Errorf("parse notes file: %w", err)
	}
	return notes, nil
}

func printReport(result *dto.ReportResult) {
	summary := result.Summary

	fmt.Printf("\nTrading Report  %s – %s (%d days)\n\n",
		summary.Period.Start,
		summary.Period.End,
		summary.Period.Days)

	fmt.Printf("Total PnL:      %+.2f USDT\n", summary.OverallPerformance.TotalPnl)
	fmt.Printf("Trades:         %d (%d wins / %d losses)\n",
		summary.OverallPerformance.TotalTrades, summary.OverallPerformance.WinningTrades, summary.OverallPerformance.LosingTrades)
	fmt.Printf("Win rate:       %.1f%%\n", summary.OverallPerformance.WinRate*100)
	fmt.Printf("Profit factor:  %s\n", ratioString(summary.OverallPerformance.ProfitFactor))
	fmt.Printf("Reward:risk:    %s\n", ratioString(summary.RiskReward.RewardRiskRatio))
	fmt.Printf("Stops:          %d full / %d partial\n\n",
		summary.StopAnalysis.FullStops, summary.StopAnalysis.PartialStops)

	symbols := summary.SortedSymbols()
	if len(symbols) > 0 {
		table := tablewriter.NewTable(os.Stdout,
			tablewriter.WithHeader([]string{"Symbol", "PnL", "Trades", "Win Rate", "Avg PnL"}),
		)
		for _, row := range symbols {
			table.Append([]string{
				row.Symbol,
				fmt.Sprintf("%+.2f", row.TotalPnl),
				fmt.Sprintf("%d", row.TradeCount),
				fmt.Sprintf("%.1f%%", row.WinRate*100),
				fmt.Sprintf("%+.2f", row.AvgProfit),
			})
		}
		table.Render()
		fmt.Println()
	}

	if summary.DataQuality.DroppedRecords > 0 {
		fmt.Printf("Dropped %d malformed record(s)\n", summary.DataQuality.DroppedRecords)
	}
	if result.HTMLPath != "" {
		fmt.Printf("HTML report written to %s\n", result.HTMLPath)
	}
	if result.Analysis != nil && !result.Analysis.IsEmpty() {
		fmt.Println("\nAI assessment included in the HTML report.")
	}
}

func ratioString(v dto.ExtFloat) string {
	f := float64(v)
	if math.IsInf(f, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", f)
}
