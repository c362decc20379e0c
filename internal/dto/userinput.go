package dto

// RiskManagement carries the trader's per-trade risk settings. A nil
// StandardRiskPerTrade means "use the configured default".
type RiskManagement struct {
	StandardRiskPerTrade *float64 `json:"standard_risk_per_trade,omitempty"`
}

// UserNotes is the optional free-text bundle the trader supplies alongside a
// report run. It feeds both the rendered report and the LLM prompt.
type UserNotes struct {
	Strategy       []string        `json:"strategy,omitempty"`
	Psychology     []string        `json:"psychology,omitempty"`
	Reflection     string          `json:"reflection,omitempty"`
	Improvements   []string        `json:"improvements,omitempty"`
	RiskManagement *RiskManagement `json:"risk_management,omitempty"`
}

// Reflections maps the notes into the summary's user_reflections block.
func (n *UserNotes) Reflections() *UserReflections {
	if n == nil {
		return nil
	}
	return &UserReflections{
		Strategy:            n.Strategy,
		PsychologicalIssues: n.Psychology,
		PersonalReflection:  n.Reflection,
		ImprovementGoals:    n.Improvements,
	}
}
