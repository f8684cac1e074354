package service

import (
	"time"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/engine"
)

// InsightsReport bundles the insight and tip lists with the
// diagnostics collected while aggregating the snapshot.
type InsightsReport struct {
	Insights    []engine.Insight    `json:"insights"`
	Tips        []string            `json:"tips"`
	Diagnostics []engine.Diagnostic `json:"diagnostics,omitempty"`
}

// BuildInsightsReport runs the full aggregation pipeline over one
// snapshot: distributions and daily counts feed the insight rules,
// financials and streaks feed the tips. The reference time is passed
// through explicitly so the report is reproducible.
func BuildInsightsReport(profile *internal.QuitProfile, events []internal.ConsumptionEvent, now time.Time) (InsightsReport, error) {
	dist, distDiags := engine.ComputeDistributions(events)
	daily, dailyDiags := engine.ComputeDailyCounts(events)

	streaks, streakDiags, err := engine.ComputeStreaks(events, now)
	if err != nil {
		return InsightsReport{}, err
	}
	fin, finDiags, err := engine.ComputeFinancials(profile, now)
	if err != nil {
		return InsightsReport{}, err
	}

	return InsightsReport{
		Insights:    engine.GenerateInsights(dist, daily),
		Tips:        engine.GenerateMotivationalTips(fin, streaks, events),
		Diagnostics: mergeDiagnostics(distDiags, dailyDiags, streakDiags, finDiags),
	}, nil
}

// mergeDiagnostics concatenates diagnostic lists, dropping duplicates
// of the same code for the same event.
func mergeDiagnostics(lists ...[]engine.Diagnostic) []engine.Diagnostic {
	type key struct{ code, eventID string }
	seen := make(map[key]struct{})
	var out []engine.Diagnostic
	for _, list := range lists {
		for _, d := range list {
			k := key{d.Code, d.EventID}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}
