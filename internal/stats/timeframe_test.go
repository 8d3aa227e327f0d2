package stats

import (
	"testing"
	"time"
)

// TestStartOfToday verifies the day boundary keeps the date and zeroes the
// clock in the reference instant's location.
func TestStartOfToday(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2025, time.March, 14, 17, 45, 30, 123, loc)

	got := StartOf(TimeframeToday, now)
	want := time.Date(2025, time.March, 14, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOf(today) = %v, want %v", got, want)
	}
}

// TestStartOfWeek verifies ISO Monday-start week boundaries, including the
// Sunday case where the week started six days earlier.
func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			now:  time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC), // Monday
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "friday maps back to monday",
			now:  time.Date(2025, time.March, 14, 23, 59, 0, 0, time.UTC), // Friday
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps back six days",
			now:  time.Date(2025, time.March, 16, 1, 0, 0, 0, time.UTC), // Sunday
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "week crossing month boundary",
			now:  time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC), // Wednesday
			want: time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOf(TimeframeWeek, tt.now); !got.Equal(tt.want) {
				t.Errorf("StartOf(week, %v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

// TestStartOfMonthYearAll verifies the month, year, and epoch boundaries.
func TestStartOfMonthYearAll(t *testing.T) {
	now := time.Date(2025, time.March, 14, 17, 45, 0, 0, time.UTC)

	if got, want := StartOf(TimeframeMonth, now), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("StartOf(month) = %v, want %v", got, want)
	}
	if got, want := StartOf(TimeframeYear, now), time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("StartOf(year) = %v, want %v", got, want)
	}
	if got, want := StartOf(TimeframeAll, now), time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("StartOf(all) = %v, want %v", got, want)
	}
}

// TestStartInstantsNested verifies that for any fixed now the five start
// instants are ordered: today >= week >= month >= year >= all, so the five
// workout sets are nested.
func TestStartInstantsNested(t *testing.T) {
	nows := []time.Time{
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),   // year boundary
		time.Date(2025, time.March, 16, 23, 59, 59, 0, time.UTC), // Sunday
		time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC),      // Monday after month start
		time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC),
	}

	for _, now := range nows {
		tfs := Timeframes()
		for i := 1; i < len(tfs); i++ {
			outer := StartOf(tfs[i], now)
			inner := StartOf(tfs[i-1], now)
			if outer.After(inner) {
				t.Errorf("now=%v: StartOf(%s)=%v is after StartOf(%s)=%v",
					now, tfs[i], outer, tfs[i-1], inner)
			}
		}
	}
}

// TestStartOfUnknownPanics verifies that an unrecognized timeframe name is
// treated as a programming error.
func TestStartOfUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("StartOf with unknown timeframe did not panic")
		}
	}()
	StartOf(Timeframe("fortnight"), time.Now())
}
