package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"trading-report/internal/dto"
)

// parseAnalysisContent adapts a raw model reply into the canonical AIAnalysis
// schema. Models answer with varying key casing ("Overall Performance
// Assessment", "overall_performance_assessment") and often wrap the JSON in
// markdown fences; all of that is absorbed here so nothing past this boundary
// ever branches on key variants. A reply that is not parseable JSON is kept
// verbatim in RawAnalysis.
func parseAnalysisContent(content string) *dto.AIAnalysis {
	jsonStr := stripMarkdownFences(content)

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return &dto.AIAnalysis{RawAnalysis: content}
	}

	sections := make(map[string][]string, len(raw))
	for key, value := range raw {
		sections[canonicalKey(key)] = toStringList(value)
	}

	keyStrengths := sections["key_strengths_identified"]
	if keyStrengths == nil {
		keyStrengths = sections["key_strengths"]
	}

	return &dto.AIAnalysis{
		OverallPerformanceAssessment: sections["overall_performance_assessment"],
		StrategyEffectiveness:        sections["strategy_effectiveness"],
		PsychologicalPatterns:        sections["psychological_patterns"],
		RiskManagementAnalysis:       sections["risk_management_analysis"],
		KeyStrengths:                 keyStrengths,
		AreasForImprovement:          sections["areas_for_improvement"],
		ActionableRecommendations:    sections["actionable_recommendations"],
	}
}

func stripMarkdownFences(content string) string {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		rest := content[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(content)
}

func canonicalKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
}

func toStringList(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			} else {
				items = append(items, fmt.Sprintf("%v", item))
			}
		}
		return items
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}
