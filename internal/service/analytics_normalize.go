package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"trading-report/internal/dto"
	"trading-report/pkg/logger"
	"trading-report/pkg/utils"

	"github.com/shopspring/decimal"
)

// ErrMalformedRecord marks a raw record whose required fields failed to parse
// or whose derived duration is negative. Bad data is never coerced to zero.
var ErrMalformedRecord = errors.New("malformed trade record")

const (
	MalformedPolicySkip  = "skip"
	MalformedPolicyAbort = "abort"
)

// Normalize converts raw closed-PnL records into typed trades, preserving
// input order. Behavior on a malformed record follows the configured policy:
// "skip" drops it with a warning and reports it in the returned diagnostics,
// "abort" fails the whole batch.
func (s *analyticsService) Normalize(ctx context.Context, records []dto.BybitClosedPnl) ([]dto.NormalizedTrade, []dto.DroppedRecord, error) {
	trades := make([]dto.NormalizedTrade, 0, len(records))
	dropped := []dto.DroppedRecord{}

	for i, rec := range records {
		trade, err := s.normalizeRecord(rec)
		if err != nil {
			if s.cfg.Report.OnMalformed == MalformedPolicyAbort {
				return nil, nil, fmt.Errorf("record %d (%s): %w", i, rec.Symbol, err)
			}
			s.log.WarnContext(ctx, "Dropping malformed trade record",
				logger.IntField("index", i),
				logger.StringField("symbol", rec.Symbol),
				logger.ErrorField(err),
			)
			dropped = append(dropped, dto.DroppedRecord{Index: i, Symbol: rec.Symbol, Reason: err.Error()})
			continue
		}
		trades = append(trades, *trade)
	}

	return trades, dropped, nil
}

func (s *analyticsService) normalizeRecord(rec dto.BybitClosedPnl) (*dto.NormalizedTrade, error) {
	pnl, err := parseRequiredDecimal(rec.ClosedPnl)
	if err != nil {
		return nil, fmt.Errorf("%w: closedPnl %q", ErrMalformedRecord, rec.ClosedPnl)
	}

	createdMs, err := strconv.ParseInt(rec.CreatedTime, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: createdTime %q", ErrMalformedRecord, rec.CreatedTime)
	}
	updatedMs, err := strconv.ParseInt(rec.UpdatedTime, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: updatedTime %q", ErrMalformedRecord, rec.UpdatedTime)
	}

	created := utils.FromUnixMilli(createdMs, s.loc)
	updated := utils.FromUnixMilli(updatedMs, s.loc)

	durationSeconds := updated.Sub(created).Seconds()
	if durationSeconds < 0 {
		return nil, fmt.Errorf("%w: negative duration %.0fms (updatedTime before createdTime)", ErrMalformedRecord, durationSeconds*1000)
	}

	return &dto.NormalizedTrade{
		Symbol:          rec.Symbol,
		Side:            rec.Side,
		ClosedPnl:       pnl,
		CreatedTime:     created,
		UpdatedTime:     updated,
		AvgEntryPrice:   parseOptionalDecimal(rec.AvgEntryPrice),
		AvgExitPrice:    parseOptionalDecimal(rec.AvgExitPrice),
		Qty:             parseOptionalDecimal(rec.Qty),
		ClosedSize:      parseOptionalDecimal(rec.ClosedSize),
		CumEntryValue:   parseOptionalDecimal(rec.CumEntryValue),
		CumExitValue:    parseOptionalDecimal(rec.CumExitValue),
		Leverage:        parseOptionalDecimal(rec.Leverage),
		OrderID:         rec.OrderID,
		OrderLinkID:     rec.OrderLinkID,
		DurationSeconds: durationSeconds,
		DurationHours:   durationSeconds / 3600,
		CalendarDate:    utils.DateOnly(created),
		HourOfDay:       created.Hour(),
		DayOfWeek:       created.Weekday().String(),
		IsProfitable:    pnl > 0,
	}, nil
}

func parseRequiredDecimal(value string) (float64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// parseOptionalDecimal returns nil when the source value is missing or not a
// number. Optional fields are never defaulted to 0 so they cannot skew
// averages downstream.
func parseOptionalDecimal(value string) *float64 {
	if value == "" {
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}
