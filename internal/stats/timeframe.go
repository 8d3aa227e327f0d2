package stats

import (
	"fmt"
	"time"
)

// Timeframe is one of the five fixed reporting windows the dashboard knows
// about. The set is closed; an unknown value passed to StartOf is a
// programming error.
type Timeframe string

const (
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
	TimeframeAll   Timeframe = "all"
)

// allEpoch is the lower bound for the "all" timeframe: effectively no bound.
var allEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Timeframes returns the five timeframes in their fixed reporting order.
func Timeframes() []Timeframe {
	return []Timeframe{TimeframeToday, TimeframeWeek, TimeframeMonth, TimeframeYear, TimeframeAll}
}

// StartOf returns the inclusive lower-bound instant for filtering workouts
// into the given timeframe, relative to now. Day/week/month/year boundaries
// use now's location; weeks start on Monday. Pure function of (tf, now).
func StartOf(tf Timeframe, now time.Time) time.Time {
	switch tf {
	case TimeframeToday:
		return startOfDay(now)
	case TimeframeWeek:
		// Days back to the Monday on or before now; Sunday counts as
		// the last day of the previous Monday-started week.
		back := (int(now.Weekday()) + 6) % 7
		return startOfDay(now.AddDate(0, 0, -back))
	case TimeframeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case TimeframeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case TimeframeAll:
		return allEpoch
	default:
		panic(fmt.Sprintf("stats: unknown timeframe %q", tf))
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
