package engine

import (
	"math"
	"time"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

// DefaultMinutesPerUnit is the average number of life-minutes recovered
// per avoided unit. The widely quoted figure for a single cigarette is
// 11 minutes; it is an approximation, not a clinical measurement.
const DefaultMinutesPerUnit = 11.0

// FinancialSummary quantifies avoided consumption since the quit
// anchor in units, money and estimated life-minutes recovered.
type FinancialSummary struct {
	UnitsAvoided                    int     `json:"units_avoided"`
	MoneySaved                      float64 `json:"money_saved"`
	EstimatedMinutesOfLifeRecovered float64 `json:"estimated_minutes_of_life_recovered"`
}

// roundHalfUp rounds to the nearest integer with .5 rounding up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeFinancials is ComputeFinancialsWithMinutes with the default
// minutes-per-unit estimate.
func ComputeFinancials(profile *internal.QuitProfile, now time.Time) (FinancialSummary, []Diagnostic, error) {
	return ComputeFinancialsWithMinutes(profile, now, DefaultMinutesPerUnit)
}

// ComputeFinancialsWithMinutes converts the days elapsed since the
// quit anchor into avoided units, money saved and life-minutes
// recovered. A nil profile yields a zero summary plus a diagnostic.
// A non-positive units-per-pack is guarded: cost per unit becomes zero
// and a diagnostic is attached instead of dividing by zero.
func ComputeFinancialsWithMinutes(profile *internal.QuitProfile, now time.Time, minutesPerUnit float64) (FinancialSummary, []Diagnostic, error) {
	if now.IsZero() {
		return FinancialSummary{}, nil, ErrZeroNow
	}
	if profile == nil || profile.QuitAnchor.IsZero() {
		return FinancialSummary{}, []Diagnostic{missingProfileDiag()}, nil
	}

	var diags []Diagnostic
	days := DaysSince(profile.QuitAnchor, now)
	units := roundHalfUp(float64(days) * profile.BaselineDailyConsumption)
	if units < 0 {
		units = 0
	}

	costPerUnit := 0.0
	if profile.UnitsPerPack > 0 {
		costPerUnit = profile.CostPerPack / float64(profile.UnitsPerPack)
	} else {
		diags = append(diags, Diagnostic{
			Code:    DiagZeroUnitsPerPack,
			Message: "units_per_pack is not positive; cost per unit defaults to zero",
		})
	}

	return FinancialSummary{
		UnitsAvoided:                    units,
		MoneySaved:                      round2(float64(units) * costPerUnit),
		EstimatedMinutesOfLifeRecovered: float64(units) * minutesPerUnit,
	}, diags, nil
}
