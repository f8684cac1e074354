package engine

import (
	"sort"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

// UnknownLabel is the bucket label for missing categorical values.
const UnknownLabel = "Unknown"

// Time-of-day bucket labels. Hours are half-open ranges taken from the
// timestamp's own offset: Morning [6,12), Afternoon [12,18),
// Evening [18,24), Night [0,6).
const (
	BucketMorning   = "Morning"
	BucketAfternoon = "Afternoon"
	BucketEvening   = "Evening"
	BucketNight     = "Night"
)

// Bucket is one row of a frequency table.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distributions are the per-dimension frequency tables of an event
// snapshot. Each table is sorted by count descending with ties broken
// by order of first appearance in the input. Location and trigger are
// truncated to the top 5 entries.
type Distributions struct {
	ByProduct   []Bucket `json:"by_product"`
	ByTimeOfDay []Bucket `json:"by_time_of_day"`
	ByMood      []Bucket `json:"by_mood"`
	ByLocation  []Bucket `json:"by_location"`
	ByTrigger   []Bucket `json:"by_trigger"`
}

// counter accumulates label counts while remembering first-appearance
// order, which is the tie-break when counts are equal.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// sorted returns the buckets by count descending. The stable sort over
// the first-appearance ordering makes ties deterministic. A positive
// limit truncates the result after sorting.
func (c *counter) sorted(limit int) []Bucket {
	buckets := make([]Bucket, 0, len(c.order))
	for _, label := range c.order {
		buckets = append(buckets, Bucket{Label: label, Count: c.counts[label]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}

func labelOrUnknown(v string) string {
	if v == "" {
		return UnknownLabel
	}
	return v
}

func timeOfDayLabel(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return BucketMorning
	case hour >= 12 && hour < 18:
		return BucketAfternoon
	case hour >= 18:
		return BucketEvening
	default:
		return BucketNight
	}
}

// ComputeDistributions groups the snapshot by product type, time of
// day, mood, location and trigger. Events with an unparsable timestamp
// are excluded from the time-of-day dimension only and reported as
// diagnostics; they still count toward every other dimension.
func ComputeDistributions(events []internal.ConsumptionEvent) (Distributions, []Diagnostic) {
	var diags []Diagnostic
	product := newCounter()
	timeOfDay := newCounter()
	mood := newCounter()
	location := newCounter()
	trigger := newCounter()

	for i := range events {
		e := &events[i]
		product.add(labelOrUnknown(string(e.ProductType)))
		mood.add(labelOrUnknown(string(e.Mood)))
		location.add(labelOrUnknown(e.Location))
		trigger.add(labelOrUnknown(e.Trigger))
		if t, ok := e.OccurredAt(); ok {
			timeOfDay.add(timeOfDayLabel(t.Hour()))
		} else {
			diags = append(diags, malformedTimestampDiag(e))
		}
	}

	return Distributions{
		ByProduct:   product.sorted(0),
		ByTimeOfDay: timeOfDay.sorted(0),
		ByMood:      mood.sorted(0),
		ByLocation:  location.sorted(5),
		ByTrigger:   trigger.sorted(5),
	}, diags
}
