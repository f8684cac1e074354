package engine

import (
	"sort"
	"time"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

// StreakSummary describes consumption-free runs derived from the
// distinct calendar dates on which events occurred.
type StreakSummary struct {
	CurrentStreakDays            int     `json:"current_streak_days"`
	LongestStreakDays            int     `json:"longest_streak_days"`
	SmokeFreeHoursSinceLastEvent float64 `json:"smoke_free_hours_since_last_event"`
}

// civilDate collapses a timestamp to midnight of its own calendar day.
// The date is taken in the timestamp's offset and re-anchored to UTC so
// date arithmetic is uniform.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeStreaks derives streak statistics from the snapshot.
// Current streak counts whole days since midnight of the most recent
// consumption date. Longest streak is the largest run of
// consumption-free days strictly between two logged dates; with fewer
// than two distinct dates it is zero. Events with unparsable
// timestamps are excluded and reported as diagnostics.
func ComputeStreaks(events []internal.ConsumptionEvent, now time.Time) (StreakSummary, []Diagnostic, error) {
	if now.IsZero() {
		return StreakSummary{}, nil, ErrZeroNow
	}

	var diags []Diagnostic
	var latest time.Time
	seen := make(map[time.Time]struct{})
	var dates []time.Time

	for i := range events {
		e := &events[i]
		t, ok := e.OccurredAt()
		if !ok {
			diags = append(diags, malformedTimestampDiag(e))
			continue
		}
		if t.After(latest) {
			latest = t
		}
		day := civilDate(t)
		if _, dup := seen[day]; !dup {
			seen[day] = struct{}{}
			dates = append(dates, day)
		}
	}

	if len(dates) == 0 {
		return StreakSummary{}, diags, nil
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest := 0
	for i := 1; i < len(dates); i++ {
		gap := int(dates[i].Sub(dates[i-1]).Hours()/24) - 1
		if gap > longest {
			longest = gap
		}
	}

	lastDate := dates[len(dates)-1]
	current := int(HoursSince(lastDate, now) / 24)

	return StreakSummary{
		CurrentStreakDays:            current,
		LongestStreakDays:            longest,
		SmokeFreeHoursSinceLastEvent: HoursSince(latest, now),
	}, diags, nil
}
