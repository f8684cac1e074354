package engine

import (
	"time"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

// Milestone is a fixed health-recovery checkpoint tied to a duration
// threshold since the quit anchor.
type Milestone struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	ThresholdHours float64 `json:"threshold_duration_hours"`
	Category       string  `json:"category"`
}

// MilestoneProgress is a milestone evaluated against elapsed time.
type MilestoneProgress struct {
	Milestone       Milestone `json:"milestone"`
	Achieved        bool      `json:"achieved"`
	ProgressPercent float64   `json:"progress_percent"`
}

// The catalog is ordered by ascending threshold and every threshold is
// strictly positive. Descriptions paraphrase commonly cited recovery
// timelines; they are informational, not medical advice.
var milestoneCatalog = []Milestone{
	{"20 Minutes", "Heart rate and blood pressure drop back toward normal.", 1.0 / 3.0, "circulation"},
	{"8 Hours", "Carbon monoxide in the blood falls by half and oxygen levels recover.", 8, "oxygen"},
	{"24 Hours", "Risk of heart attack begins to decrease.", 24, "heart"},
	{"48 Hours", "Nerve endings start to regrow; taste and smell sharpen.", 48, "senses"},
	{"72 Hours", "Bronchial tubes relax and breathing becomes easier.", 72, "breathing"},
	{"2 Weeks", "Circulation improves and physical activity gets easier.", 14 * 24, "circulation"},
	{"1 Month", "Lung function increases; coughing and shortness of breath decline.", 30 * 24, "lungs"},
	{"3 Months", "Circulation and lung function continue to improve markedly.", 90 * 24, "lungs"},
	{"1 Year", "Excess risk of coronary heart disease drops to half that of a smoker.", 365 * 24, "heart"},
}

// MilestoneCatalog returns a copy of the fixed milestone catalog in
// ascending threshold order.
func MilestoneCatalog() []Milestone {
	out := make([]Milestone, len(milestoneCatalog))
	copy(out, milestoneCatalog)
	return out
}

// ComputeMilestoneProgress evaluates the catalog against the elapsed
// time between the profile's quit anchor and now. A nil profile (or a
// zero anchor) is treated as anchor = now, so nothing is achieved and
// a diagnostic is attached. Progress is clamped to [0,100] and is
// non-decreasing as now advances.
func ComputeMilestoneProgress(profile *internal.QuitProfile, now time.Time) ([]MilestoneProgress, []Diagnostic, error) {
	if now.IsZero() {
		return nil, nil, ErrZeroNow
	}
	var diags []Diagnostic
	anchor := now
	if profile == nil || profile.QuitAnchor.IsZero() {
		diags = append(diags, missingProfileDiag())
	} else {
		anchor = profile.QuitAnchor
	}

	hours := HoursSince(anchor, now)
	out := make([]MilestoneProgress, 0, len(milestoneCatalog))
	for _, m := range milestoneCatalog {
		pct := hours / m.ThresholdHours * 100
		if pct > 100 {
			pct = 100
		}
		out = append(out, MilestoneProgress{
			Milestone:       m,
			Achieved:        pct >= 100,
			ProgressPercent: pct,
		})
	}
	return out, diags, nil
}
