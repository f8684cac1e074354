package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/engine"
	"github.com/cmw1990/quitopia-support-sub008/internal/service"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

// loadProfile treats an unset profile as nil rather than an error; the
// engine defaults elapsed time to zero in that case.
func loadProfile(c *gin.Context, app App, userID string) (*internal.QuitProfile, bool) {
	profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, true
		}
		HandleError(c, app.Logger(), err, 500, "Failed to fetch profile")
		return nil, false
	}
	return profile, true
}

func loadEvents(c *gin.Context, app App, userID string) ([]internal.ConsumptionEvent, bool) {
	events, err := app.EventRepo().ListEvents(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, app.Logger(), err, 500, "Failed to fetch events")
		return nil, false
	}
	return events, true
}

func diagMeta(diags []engine.Diagnostic) map[string]any {
	if len(diags) == 0 {
		return nil
	}
	return map[string]any{"diagnostics": diags}
}

func GetMilestones(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		profile, ok := loadProfile(c, app, user.ID)
		if !ok {
			return
		}

		progress, diags, err := engine.ComputeMilestoneProgress(profile, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute milestones")
			return
		}
		HandleSuccess(c, app.Logger(), progress, diagMeta(diags))
	}
}

func GetDistributions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		events, ok := loadEvents(c, app, user.ID)
		if !ok {
			return
		}

		dist, diags := engine.ComputeDistributions(events)
		HandleSuccess(c, app.Logger(), dist, diagMeta(diags))
	}
}

func GetStreaks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		events, ok := loadEvents(c, app, user.ID)
		if !ok {
			return
		}

		streaks, diags, err := engine.ComputeStreaks(events, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute streaks")
			return
		}
		HandleSuccess(c, app.Logger(), streaks, diagMeta(diags))
	}
}

func GetFinancials(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		profile, ok := loadProfile(c, app, user.ID)
		if !ok {
			return
		}

		fin, diags, err := engine.ComputeFinancials(profile, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute financials")
			return
		}
		HandleSuccess(c, app.Logger(), fin, diagMeta(diags))
	}
}

func GetInsights(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		profile, ok := loadProfile(c, app, user.ID)
		if !ok {
			return
		}
		events, ok := loadEvents(c, app, user.ID)
		if !ok {
			return
		}

		report, err := service.BuildInsightsReport(profile, events, time.Now().UTC())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to build insights")
			return
		}
		HandleSuccess(c, app.Logger(), report, nil)
	}
}
