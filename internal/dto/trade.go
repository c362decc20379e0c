package dto

import "time"

// NormalizedTrade is the typed, derived form of one BybitClosedPnl record.
// Timestamps are already projected into the reporting timezone; calendar
// fields (CalendarDate, HourOfDay, DayOfWeek) are derived from CreatedTime in
// that zone. Optional numerics stay nil when the source value was missing or
// unparsable so they never corrupt averages.
type NormalizedTrade struct {
	Symbol        string    `json:"symbol"`
	Side          string    `json:"side"`
	ClosedPnl     float64   `json:"closed_pnl"`
	CreatedTime   time.Time `json:"created_time"`
	UpdatedTime   time.Time `json:"updated_time"`
	AvgEntryPrice *float64  `json:"avg_entry_price,omitempty"`
	AvgExitPrice  *float64  `json:"avg_exit_price,omitempty"`
	Qty           *float64  `json:"qty,omitempty"`
	ClosedSize    *float64  `json:"closed_size,omitempty"`
	CumEntryValue *float64  `json:"cum_entry_value,omitempty"`
	CumExitValue  *float64  `json:"cum_exit_value,omitempty"`
	Leverage      *float64  `json:"leverage,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	OrderLinkID   string    `json:"order_link_id,omitempty"`

	DurationSeconds float64   `json:"duration_seconds"`
	DurationHours   float64   `json:"duration_hours"`
	CalendarDate    time.Time `json:"date"`
	HourOfDay       int       `json:"hour_of_day"`
	DayOfWeek       string    `json:"day_of_week"`
	IsProfitable    bool      `json:"profit_flag"`
}

// DroppedRecord describes one raw record rejected during normalization.
type DroppedRecord struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}
