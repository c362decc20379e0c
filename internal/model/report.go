package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TradingReport is one archived report run: the window it covered, the full
// summary and AI analysis as JSONB, and the headline numbers denormalized for
// listing without unpacking the JSON.
type TradingReport struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	PeriodStart    time.Time      `gorm:"not null" json:"period_start"`
	PeriodEnd      time.Time      `gorm:"not null" json:"period_end"`
	TotalTrades    int            `gorm:"not null;default:0" json:"total_trades"`
	TotalPnl       float64        `gorm:"not null;default:0" json:"total_pnl"`
	WinRate        float64        `gorm:"not null;default:0" json:"win_rate"`
	DroppedRecords int            `gorm:"not null;default:0" json:"dropped_records"`
	Summary        datatypes.JSON `gorm:"type:jsonb" json:"summary"`
	Analysis       datatypes.JSON `gorm:"type:jsonb" json:"analysis,omitempty"`
	HTMLPath       string         `json:"html_path,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TradingReport) TableName() string {
	return "trading_reports"
}
