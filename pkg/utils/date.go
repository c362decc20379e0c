package utils

import (
	"fmt"
	"time"
)

const reportingUTCOffsetSeconds = 7 * 60 * 60

// ReportingLocation resolves the reporting timezone by IANA name. Falls back
// to a fixed UTC+7 zone when the tzdata lookup fails, so calendar bucketing
// stays consistent on hosts without a zone database.
func ReportingLocation(name string) *time.Location {
	if name == "" {
		return time.FixedZone("UTC+7", reportingUTCOffsetSeconds)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("UTC+7", reportingUTCOffsetSeconds)
	}
	return loc
}

// FromUnixMilli converts a millisecond epoch into the given reporting location.
func FromUnixMilli(ms int64, loc *time.Location) time.Time {
	return time.UnixMilli(ms).In(loc)
}

// DateOnly truncates t to its calendar date in t's own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysInclusive counts calendar days between two instants, both ends counted.
func DaysInclusive(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(DateOnly(end).Sub(DateOnly(start)).Hours()/24) + 1
}

func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func PrettyDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d - %02d:%02d",
		t.Day(),
		t.Month().String(),
		t.Year(),
		t.Hour(),
		t.Minute(),
	)
}
