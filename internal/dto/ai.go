package dto

// OpenRouter chat-completions request/response.

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type ChatCompletionChoice struct {
	Message ChatMessage `json:"message"`
}

type ChatCompletionResponse struct {
	Choices []ChatCompletionChoice `json:"choices"`
}

// Gemini generateContent request/response.

type GeminiAPIRequest struct {
	Contents []GeminiContent `json:"contents"`
}

type GeminiAPIResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

// AIAnalysis is the canonical qualitative assessment schema. Whatever key
// casing the model replies with ("Overall Performance Assessment" vs
// "overall_performance_assessment") is normalized into this struct by the
// boundary adapter; internal code never branches on key variants. Each
// section is a list of points; a single prose answer becomes a one-element
// list. RawAnalysis carries the unstructured reply when the model did not
// return parseable JSON.
type AIAnalysis struct {
	OverallPerformanceAssessment []string `json:"overall_performance_assessment,omitempty"`
	StrategyEffectiveness        []string `json:"strategy_effectiveness,omitempty"`
	PsychologicalPatterns        []string `json:"psychological_patterns,omitempty"`
	RiskManagementAnalysis       []string `json:"risk_management_analysis,omitempty"`
	KeyStrengths                 []string `json:"key_strengths,omitempty"`
	AreasForImprovement          []string `json:"areas_for_improvement,omitempty"`
	ActionableRecommendations    []string `json:"actionable_recommendations,omitempty"`
	RawAnalysis                  string   `json:"raw_analysis,omitempty"`
}

// IsEmpty reports whether no section of the analysis was populated.
func (a *AIAnalysis) IsEmpty() bool {
	if a == nil {
		return true
	}
	return len(a.OverallPerformanceAssessment) == 0 &&
		len(a.StrategyEffectiveness) == 0 &&
		len(a.PsychologicalPatterns) == 0 &&
		len(a.RiskManagementAnalysis) == 0 &&
		len(a.KeyStrengths) == 0 &&
		len(a.AreasForImprovement) == 0 &&
		len(a.ActionableRecommendations) == 0 &&
		a.RawAnalysis == ""
}
