package engine

import (
	"sort"
	"time"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

// DailyCount is one point of the daily-aggregate series: the number of
// events logged on one calendar date.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// ComputeDailyCounts collapses the snapshot into one point per
// distinct calendar date, ascending. Events with unparsable timestamps
// are excluded and reported as diagnostics. The series feeds the
// consumption-trend insight.
func ComputeDailyCounts(events []internal.ConsumptionEvent) ([]DailyCount, []Diagnostic) {
	var diags []Diagnostic
	counts := make(map[time.Time]int)

	for i := range events {
		e := &events[i]
		t, ok := e.OccurredAt()
		if !ok {
			diags = append(diags, malformedTimestampDiag(e))
			continue
		}
		counts[civilDate(t)]++
	}

	out := make([]DailyCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DailyCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, diags
}
