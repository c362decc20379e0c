package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-report/config"
	"trading-report/internal/dto"
)

func rawRecord(symbol, pnl, createdMs, updatedMs string) dto.BybitClosedPnl {
	return dto.BybitClosedPnl{
		Symbol:      symbol,
		Side:        dto.SideBuy,
		ClosedPnl:   pnl,
		CreatedTime: createdMs,
		UpdatedTime: updatedMs,
	}
}

func TestAnalyticsService_Normalize_ValidRecord(t *testing.T) {
	svc := newTestAnalyticsService(t, nil)

	// 2024-01-01T23:30:00Z closed one hour later.
	rec := rawRecord("BTCUSDT", "12.5", "1704151800000", "1704155400000")
	rec.AvgEntryPrice = "42000.5"
	rec.Leverage = "10"

	trades, dropped, err := svc.Normalize(context.Background(), []dto.BybitClosedPnl{rec})
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Empty(t, dropped)

	got := trades[0]
	assert.Equal(t, "BTCUSDT", got.Symbol)
	assert.InDelta(t, 12.5, got.ClosedPnl, 1e-9)
	assert.True(t, got.IsProfitable)
	assert.InDelta(t, 3600.0, got.DurationSeconds, 1e-9)
	assert.InDelta(t, 1.0, got.DurationHours, 1e-9)

	// 23:30 UTC is 06:30 the next day in the reporting timezone.
	assert.Equal(t, 6, got.HourOfDay)
	assert.Equal(t, "Tuesday", got.DayOfWeek)
	assert.Equal(t, 2, got.CalendarDate.Day())

	require.NotNil(t, got.AvgEntryPrice)
	assert.InDelta(t, 42000.5, *got.AvgEntryPrice, 1e-9)
	require.NotNil(t, got.Leverage)
	assert.InDelta(t, 10.0, *got.Leverage, 1e-9)
}

func TestAnalyticsService_Normalize_OptionalFieldsStayNil(t *testing.T) {
	svc := newTestAnalyticsService(t, nil)

	rec := rawRecord("BTCUSDT", "-3", "1704151800000", "1704155400000")
	rec.AvgExitPrice = "not-a-number"

	trades, dropped, err := svc.Normalize(context.Background(), []dto.BybitClosedPnl{rec})
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Empty(t, dropped)
	assert.Nil(t, trades[0].AvgExitPrice)
	assert.Nil(t, trades[0].Qty)
}

func TestAnalyticsService_Normalize_SkipPolicy(t *testing.T) {
	svc := newTestAnalyticsService(t, nil)

	records := []dto.BybitClosedPnl{
		rawRecord("BTCUSDT", "10", "1704151800000", "1704155400000"),
		rawRecord("ETHUSDT", "oops", "1704151800000", "1704155400000"),
		rawRecord("SOLUSDT", "-2", "1704151800000", "1704151800000"),
	}

	trades, dropped, err := svc.Normalize(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, trades, 2)
	assert.Equal(t, "BTCUSDT", trades[0].Symbol)
	assert.Equal(t, "SOLUSDT", trades[1].Symbol)

	require.Len(t, dropped, 1)
	assert.Equal(t, 1, dropped[0].Index)
	assert.Equal(t, "ETHUSDT", dropped[0].Symbol)
	assert.Contains(t, dropped[0].Reason, "closedPnl")
}

func TestAnalyticsService_Normalize_AbortPolicy(t *testing.T) {
	svc := newTestAnalyticsService(t, func(cfg *config.Config) {
		cfg.Report.OnMalformed = MalformedPolicyAbort
	})

	records := []dto.BybitClosedPnl{
		rawRecord("BTCUSDT", "10", "1704151800000", "1704155400000"),
		rawRecord("ETHUSDT", "10", "bad-timestamp", "1704155400000"),
	}

	trades, dropped, err := svc.Normalize(context.Background(), records)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "record 1")
	assert.Nil(t, trades)
	assert.Nil(t, dropped)
}

func TestAnalyticsService_Normalize_NegativeDuration(t *testing.T) {
	svc := newTestAnalyticsService(t, nil)

	records := []dto.BybitClosedPnl{
		rawRecord("BTCUSDT", "5", "1704155400000", "1704151800000"),
	}

	trades, dropped, err := svc.Normalize(context.Background(), records)
	require.NoError(t, err)
	assert.Empty(t, trades)
	require.Len(t, dropped, 1)
	assert.Contains(t, dropped[0].Reason, "negative duration")
}

func TestAnalyticsService_Normalize_EmptyInput(t *testing.T) {
	svc := newTestAnalyticsService(t, nil)

	trades, dropped, err := svc.Normalize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.Empty(t, dropped)
}
