package dto

import "time"

// GenerateReportParam describes one report run: the trade window, whether to
// skip the AI assessment, and the trader's optional notes.
type GenerateReportParam struct {
	Start     time.Time
	End       time.Time
	SkipAI    bool
	UserNotes *UserNotes
}

// ReportResult is everything a single run produced.
type ReportResult struct {
	Summary   TradingSummary  `json:"summary"`
	Analysis  *AIAnalysis     `json:"analysis,omitempty"`
	Dropped   []DroppedRecord `json:"dropped,omitempty"`
	HTMLPath  string          `json:"html_path,omitempty"`
	ArchiveID uint            `json:"archive_id,omitempty"`
}
