package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

func profileQuitAt(anchor time.Time) *internal.QuitProfile {
	return &internal.QuitProfile{
		UserID:                   "u1",
		QuitAnchor:               anchor,
		BaselineDailyConsumption: 20,
		CostPerPack:              10,
		UnitsPerPack:             20,
	}
}

func TestHoursSinceClampsFutureAnchor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, HoursSince(now.Add(2*time.Hour), now))
	assert.Equal(t, 0, DaysSince(now.Add(48*time.Hour), now))
	assert.InDelta(t, 26.0, HoursSince(now.Add(-26*time.Hour), now), 1e-9)
	assert.Equal(t, 1, DaysSince(now.Add(-26*time.Hour), now))
}

func TestMilestoneCatalogAscendingAndPositive(t *testing.T) {
	catalog := MilestoneCatalog()
	require.NotEmpty(t, catalog)
	prev := 0.0
	for _, m := range catalog {
		assert.Greater(t, m.ThresholdHours, 0.0, m.Name)
		assert.Greater(t, m.ThresholdHours, prev, m.Name)
		prev = m.ThresholdHours
	}
}

func TestMilestoneProgressAt26Hours(t *testing.T) {
	now := time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC)
	progress, diags, err := ComputeMilestoneProgress(profileQuitAt(now.Add(-26*time.Hour)), now)
	require.NoError(t, err)
	assert.Empty(t, diags)

	byName := map[string]MilestoneProgress{}
	for _, p := range progress {
		byName[p.Milestone.Name] = p
	}

	assert.True(t, byName["20 Minutes"].Achieved)
	assert.Equal(t, 100.0, byName["20 Minutes"].ProgressPercent)
	assert.True(t, byName["24 Hours"].Achieved)
	assert.Equal(t, 100.0, byName["24 Hours"].ProgressPercent)
	assert.False(t, byName["48 Hours"].Achieved)
	assert.InDelta(t, 54.17, byName["48 Hours"].ProgressPercent, 0.01)
}

func TestMilestoneProgressMonotonicAndBounded(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := profileQuitAt(anchor)

	var prev []MilestoneProgress
	for _, elapsed := range []time.Duration{0, time.Hour, 30 * time.Hour, 500 * time.Hour, 10000 * time.Hour} {
		progress, _, err := ComputeMilestoneProgress(profile, anchor.Add(elapsed))
		require.NoError(t, err)
		for i, p := range progress {
			assert.GreaterOrEqual(t, p.ProgressPercent, 0.0)
			assert.LessOrEqual(t, p.ProgressPercent, 100.0)
			if prev != nil {
				assert.GreaterOrEqual(t, p.ProgressPercent, prev[i].ProgressPercent)
			}
		}
		prev = progress
	}
}

func TestMilestoneProgressPreservesCatalogOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	progress, _, err := ComputeMilestoneProgress(profileQuitAt(now.Add(-time.Hour)), now)
	require.NoError(t, err)
	catalog := MilestoneCatalog()
	require.Len(t, progress, len(catalog))
	for i, p := range progress {
		assert.Equal(t, catalog[i].Name, p.Milestone.Name)
	}
}

func TestMilestoneProgressMissingProfile(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	progress, diags, err := ComputeMilestoneProgress(nil, now)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagMissingProfile, diags[0].Code)
	for _, p := range progress {
		assert.False(t, p.Achieved)
		assert.Equal(t, 0.0, p.ProgressPercent)
	}
}

func TestMilestoneProgressZeroNowFailsFast(t *testing.T) {
	_, _, err := ComputeMilestoneProgress(profileQuitAt(time.Now()), time.Time{})
	assert.ErrorIs(t, err, ErrZeroNow)
}

func TestMilestoneProgressFutureAnchor(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	progress, _, err := ComputeMilestoneProgress(profileQuitAt(now.Add(72*time.Hour)), now)
	require.NoError(t, err)
	for _, p := range progress {
		assert.Equal(t, 0.0, p.ProgressPercent)
	}
}
