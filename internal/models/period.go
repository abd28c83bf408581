package models

import "time"

type Period string

const (
	Period1H  Period = "1h"
	Period6H  Period = "6h"
	Period24H Period = "24h"
	Period48H Period = "48h"
	Period7D  Period = "7d"
	Period30D Period = "30d"
	Period90D Period = "90d"
	Period1Y  Period = "1y"
	PeriodAll Period = "all"

	DefaultPeriod = Period24H
)

var periodDurations = map[Period]time.Duration{
	Period1H:  time.Hour,
	Period6H:  6 * time.Hour,
	Period24H: 24 * time.Hour,
	Period48H: 48 * time.Hour,
	Period7D:  7 * 24 * time.Hour,
	Period30D: 30 * 24 * time.Hour,
	Period90D: 90 * 24 * time.Hour,
	Period1Y:  365 * 24 * time.Hour,
}

// ParsePeriod maps a query value to a Period. An empty value is the default
// window, an unrecognised one means the whole history.
func ParsePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod
	}
	p := Period(s)
	if _, ok := periodDurations[p]; ok {
		return p
	}
	return PeriodAll
}

// Duration returns the window length, zero for PeriodAll.
func (p Period) Duration() time.Duration {
	return periodDurations[p]
}

// Since returns the lower bound of the window ending at now.
// The zero time means unbounded.
func (p Period) Since(now time.Time) time.Time {
	d := p.Duration()
	if d == 0 {
		return time.Time{}
	}
	return now.Add(-d)
}

// HourBucket truncates t to the hour in loc and formats it as a stats key.
func HourBucket(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:00")
}
