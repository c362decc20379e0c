package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"trading-report/internal/dto"
)

const analyzerSystemRole = "You are a professional trading coach with expertise in analyzing trading performance data."

// buildAnalyzerPrompt renders the coaching prompt around the serialized
// summary. The summary JSON is the same stable representation the renderer
// consumes, so identical input produces identical prompt text.
func buildAnalyzerPrompt(summary dto.TradingSummary, notes *dto.UserNotes) (string, error) {
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal trading summary: %w", err)
	}

	notesText := "None provided"
	if notes != nil {
		notesJSON, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal user notes: %w", err)
		}
		notesText = string(notesJSON)
	}

	var sb strings.Builder

	sb.WriteString(`You are a professional trading coach and analyst. I'll provide you with my trading performance data
and personal notes. Please analyze this information and provide insights in the following categories:

1. Overall Performance Assessment
2. Strategy Effectiveness
3. Psychological Patterns
4. Risk Management Analysis
5. Key Strengths Identified
6. Areas for Improvement
7. Actionable Recommendations

Please format your analysis in JSON, with keys corresponding to the categories above.

## Trading Performance Data:

`)
	sb.Write(summaryJSON)
	sb.WriteString("\n\n## Trader's Personal Notes:\n\n")
	sb.WriteString(notesText)
	sb.WriteString(`

Based on this data, please provide your professional analysis in JSON format.
Focus especially on identifying patterns in profitable vs. unprofitable trades,
psychological issues that might be affecting performance, and concrete steps for improvement.
`)

	return sb.String(), nil
}
