package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisContent_KeyVariants(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "snake_case keys",
			content: `{"overall_performance_assessment": ["profitable month"],
				"key_strengths_identified": ["discipline"],
				"actionable_recommendations": ["size down"]}`,
		},
		{
			name: "title case keys",
			content: `{"Overall Performance Assessment": ["profitable month"],
				"Key Strengths Identified": ["discipline"],
				"Actionable Recommendations": ["size down"]}`,
		},
		{
			name: "wrapped in json fence",
			content: "```json\n" + `{"overall_performance_assessment": ["profitable month"],
				"key_strengths_identified": ["discipline"],
				"actionable_recommendations": ["size down"]}` + "\n```",
		},
		{
			name: "short key strengths variant",
			content: `{"Overall Performance Assessment": ["profitable month"],
				"Key Strengths": ["discipline"],
				"Actionable Recommendations": ["size down"]}`,
		},
		{
			name: "wrapped in bare fence",
			content: "```\n" + `{"Overall Performance Assessment": ["profitable month"],
				"Key Strengths Identified": ["discipline"],
				"Actionable Recommendations": ["size down"]}` + "\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAnalysisContent(tt.content)
			require.NotNil(t, got)

			assert.Equal(t, []string{"profitable month"}, got.OverallPerformanceAssessment)
			assert.Equal(t, []string{"discipline"}, got.KeyStrengths)
			assert.Equal(t, []string{"size down"}, got.ActionableRecommendations)
			assert.Empty(t, got.RawAnalysis)
		})
	}
}

func TestParseAnalysisContent_ScalarValuesBecomeSingletonLists(t *testing.T) {
	got := parseAnalysisContent(`{"strategy_effectiveness": "breakouts worked well"}`)

	assert.Equal(t, []string{"breakouts worked well"}, got.StrategyEffectiveness)
	assert.Nil(t, got.PsychologicalPatterns)
}

func TestParseAnalysisContent_MalformedFallsBackToRaw(t *testing.T) {
	content := "The trader had a good month but should reduce position size."

	got := parseAnalysisContent(content)
	require.NotNil(t, got)

	assert.Equal(t, content, got.RawAnalysis)
	assert.Nil(t, got.OverallPerformanceAssessment)
	assert.False(t, got.IsEmpty())
}

func TestParseAnalysisContent_FenceWithProse(t *testing.T) {
	content := "Here is my analysis:\n```json\n{\"areas_for_improvement\": [\"exit timing\"]}\n```\nHope this helps."

	got := parseAnalysisContent(content)

	assert.Equal(t, []string{"exit timing"}, got.AreasForImprovement)
	assert.Empty(t, got.RawAnalysis)
}

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no fences", content: `  {"a": 1}  `, want: `{"a": 1}`},
		{name: "json fence", content: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", content: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "unterminated fence", content: "```json\n{\"a\": 1}", want: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkdownFences(tt.content))
		})
	}
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, "overall_performance_assessment", canonicalKey("Overall Performance Assessment"))
	assert.Equal(t, "key_strengths_identified", canonicalKey("  Key Strengths Identified "))
	assert.Equal(t, "already_snake", canonicalKey("already_snake"))
}
