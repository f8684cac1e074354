package engine

import (
	"fmt"
	"strings"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

// Insight is one natural-language observation about the user's
// consumption patterns. Rank is the 1-based position in the output,
// which always matches rule evaluation order.
type Insight struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Rank     int    `json:"rank"`
}

// insightRule pairs a predicate/formatter with its category. Rules run
// top to bottom, each contributing at most one insight, and the output
// is never re-sorted.
type insightRule struct {
	category string
	apply    func(dist Distributions, daily []DailyCount) (string, bool)
}

var insightRules = []insightRule{
	{"time_of_day", func(d Distributions, _ []DailyCount) (string, bool) {
		if len(d.ByTimeOfDay) == 0 {
			return "", false
		}
		return fmt.Sprintf("You most frequently consume during the %s.", strings.ToLower(d.ByTimeOfDay[0].Label)), true
	}},
	{"mood", func(d Distributions, _ []DailyCount) (string, bool) {
		if len(d.ByMood) == 0 {
			return "", false
		}
		return fmt.Sprintf("You often consume when feeling %s.", strings.ToLower(d.ByMood[0].Label)), true
	}},
	{"trend", trendInsight},
	{"location", func(d Distributions, _ []DailyCount) (string, bool) {
		if len(d.ByLocation) == 0 {
			return "", false
		}
		return fmt.Sprintf("You consume most often at %s.", d.ByLocation[0].Label), true
	}},
	{"trigger", func(d Distributions, _ []DailyCount) (string, bool) {
		if len(d.ByTrigger) == 0 {
			return "", false
		}
		return fmt.Sprintf("Your most common trigger is %s.", d.ByTrigger[0].Label), true
	}},
}

// trendInsight compares the first and last points of the trailing
// three entries of the daily series. It needs at least two points and
// stays silent when they are equal.
func trendInsight(_ Distributions, daily []DailyCount) (string, bool) {
	if len(daily) < 2 {
		return "", false
	}
	window := daily
	if len(window) > 3 {
		window = window[len(window)-3:]
	}
	first := window[0].Count
	last := window[len(window)-1].Count
	switch {
	case last > first:
		return "Your daily consumption has been increasing recently. It may help to revisit your coping strategies.", true
	case last < first:
		return "Your daily consumption has been decreasing recently. Keep it up!", true
	}
	return "", false
}

// GenerateInsights runs the insight rules in their fixed order over
// the aggregated inputs. Empty inputs produce no insights.
func GenerateInsights(dist Distributions, daily []DailyCount) []Insight {
	var out []Insight
	for _, r := range insightRules {
		if text, ok := r.apply(dist, daily); ok {
			out = append(out, Insight{Text: text, Category: r.category, Rank: len(out) + 1})
		}
	}
	return out
}

// ClosingTip is appended to every tip list regardless of conditions.
const ClosingTip = "Every craving passes within a few minutes, whether you give in or not. Ride it out."

// dominantTrigger returns the most frequent explicitly logged trigger.
// Missing triggers never dominate.
func dominantTrigger(events []internal.ConsumptionEvent) (string, bool) {
	c := newCounter()
	for i := range events {
		if t := events[i].Trigger; t != "" {
			c.add(t)
		}
	}
	buckets := c.sorted(1)
	if len(buckets) == 0 {
		return "", false
	}
	return buckets[0].Label, true
}

// morningShare is the fraction of events whose hour falls in the
// 05:00–12:00 window. Unparsable timestamps count toward the
// denominator only.
func morningShare(events []internal.ConsumptionEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	morning := 0
	for i := range events {
		if t, ok := events[i].OccurredAt(); ok {
			if h := t.Hour(); h >= 5 && h < 12 {
				morning++
			}
		}
	}
	return float64(morning) / float64(len(events))
}

// GenerateMotivationalTips assembles the tip list in its fixed order:
// dominant trigger, morning pattern, streak state, money saved, then
// the constant closing tip, which is always last.
func GenerateMotivationalTips(fin FinancialSummary, streaks StreakSummary, events []internal.ConsumptionEvent) []string {
	var tips []string

	if trigger, ok := dominantTrigger(events); ok {
		tips = append(tips, fmt.Sprintf("%q shows up a lot in your log. Planning a response to it ahead of time makes it easier to resist.", trigger))
	}
	if morningShare(events) > 0.4 {
		tips = append(tips, "Most of your consumption happens in the morning. Changing your wake-up routine can help break the association.")
	}
	if streaks.CurrentStreakDays > 0 {
		unit := "days"
		if streaks.CurrentStreakDays == 1 {
			unit = "day"
		}
		tips = append(tips, fmt.Sprintf("You have been smoke-free for %d %s. Cravings get weaker with every one.", streaks.CurrentStreakDays, unit))
	} else {
		tips = append(tips, "A slip is not a fall. Log it, learn from it, and start your next streak today.")
	}
	if fin.MoneySaved > 0 {
		tips = append(tips, fmt.Sprintf("You have already saved $%.2f. Put it toward something you actually want.", fin.MoneySaved))
	}

	return append(tips, ClosingTip)
}
