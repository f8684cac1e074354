package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

func newTestRepos(t *testing.T) (storage.EventRepository, storage.ProfileRepository) {
	t.Helper()
	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	eventRepo, profileRepo, err := storage.NewFileRepositories(
		filepath.Join(dir, "events.json"),
		filepath.Join(dir, "profiles.json"),
		logger,
	)
	require.NoError(t, err)
	return eventRepo, profileRepo
}

func validEventRequest() *EventRequest {
	return &EventRequest{
		ProductType:          "cigarette",
		Quantity:             1,
		Unit:                 "cigarette",
		ConsumptionTimestamp: "2025-06-01T08:00:00Z",
		Trigger:              "coffee",
		Mood:                 "stressed",
	}
}

func TestValidateEventRequest(t *testing.T) {
	assert.NoError(t, ValidateEventRequest(validEventRequest()))

	bad := validEventRequest()
	bad.ProductType = "banana"
	assert.Error(t, ValidateEventRequest(bad))

	bad = validEventRequest()
	bad.Quantity = -1
	assert.Error(t, ValidateEventRequest(bad))

	bad = validEventRequest()
	bad.ConsumptionTimestamp = "yesterday"
	assert.Error(t, ValidateEventRequest(bad))

	bad = validEventRequest()
	outOfRange := 11
	bad.Intensity = &outOfRange
	assert.Error(t, ValidateEventRequest(bad))
}

func TestCreateUpdateDeleteEvent(t *testing.T) {
	eventRepo, _ := newTestRepos(t)
	ctx := context.Background()
	user := &internal.User{ID: "u1", Token: "T", Name: "Test User"}

	created, err := CreateEvent(ctx, eventRepo, user, validEventRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)

	events, err := eventRepo.ListEvents(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	edit := validEventRequest()
	edit.Location = "balcony"
	updated, err := UpdateEvent(ctx, eventRepo, user, created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "balcony", updated.Location)

	// Only the owner may edit.
	intruder := &internal.User{ID: "u2", Token: "X", Name: "Someone Else"}
	_, err = UpdateEvent(ctx, eventRepo, intruder, created.ID, edit)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, DeleteEvent(ctx, eventRepo, user, created.ID))
	events, err = eventRepo.ListEvents(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSetQuitProfileReplacesExisting(t *testing.T) {
	_, profileRepo := newTestRepos(t)
	ctx := context.Background()
	user := &internal.User{ID: "u1", Token: "T", Name: "Test User"}

	first := &ProfileRequest{
		QuitAnchor:               time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		BaselineDailyConsumption: 20,
		CostPerPack:              10,
		UnitsPerPack:             20,
	}
	require.NoError(t, ValidateProfileRequest(first))
	_, err := SetQuitProfile(ctx, profileRepo, user, first)
	require.NoError(t, err)

	second := &ProfileRequest{
		QuitAnchor:               time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		BaselineDailyConsumption: 15,
		CostPerPack:              12,
		UnitsPerPack:             20,
	}
	_, err = SetQuitProfile(ctx, profileRepo, user, second)
	require.NoError(t, err)

	got, err := profileRepo.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.QuitAnchor, got.QuitAnchor)
	assert.Equal(t, 15.0, got.BaselineDailyConsumption)
}

func TestBuildInsightsReport(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	profile := &internal.QuitProfile{
		UserID:                   "u1",
		QuitAnchor:               now.AddDate(0, 0, -10),
		BaselineDailyConsumption: 20,
		CostPerPack:              10,
		UnitsPerPack:             20,
	}
	events := []internal.ConsumptionEvent{
		{ID: "e1", UserID: "u1", ProductType: internal.ProductCigarette, Unit: "cigarette",
			ConsumptionTimestamp: "2025-05-30T08:00:00Z", Trigger: "coffee", Mood: internal.MoodStressed},
		{ID: "e2", UserID: "u1", ProductType: internal.ProductCigarette, Unit: "cigarette",
			ConsumptionTimestamp: "2025-05-31T09:00:00Z", Trigger: "coffee"},
	}

	report, err := BuildInsightsReport(profile, events, now)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Insights)
	require.NotEmpty(t, report.Tips)
	assert.Equal(t, 1, report.Insights[0].Rank)

	// Deterministic: the same snapshot yields the same report.
	again, err := BuildInsightsReport(profile, events, now)
	require.NoError(t, err)
	assert.Equal(t, report, again)
}

func TestBuildInsightsReportEmptySnapshot(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	report, err := BuildInsightsReport(nil, nil, now)
	require.NoError(t, err)
	assert.Empty(t, report.Insights)
	require.NotEmpty(t, report.Tips)
}
