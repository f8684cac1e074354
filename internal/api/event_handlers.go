package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/engine"
	"github.com/cmw1990/quitopia-support-sub008/internal/service"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

func PostEvent(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.EventRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateEventRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		event, err := service.CreateEvent(c.Request.Context(), app.EventRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save event")
			return
		}

		HandleCreated(c, app.Logger(), event)
	}
}

func GetEvents(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		events, err := app.EventRepo().ListEvents(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch events")
			return
		}

		var meta map[string]any
		if diags := engine.VetEvents(events); len(diags) > 0 {
			meta = map[string]any{"diagnostics": diags}
		}
		HandleSuccess(c, app.Logger(), events, meta)
	}
}

func PutEvent(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		eventID := c.Param("id")

		var body service.EventRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateEventRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		event, err := service.UpdateEvent(c.Request.Context(), app.EventRepo(), user, eventID, &body)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Event not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to update event")
			return
		}

		HandleSuccess(c, app.Logger(), event, nil)
	}
}

func DeleteEvent(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		eventID := c.Param("id")

		if err := service.DeleteEvent(c.Request.Context(), app.EventRepo(), user, eventID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Event not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to delete event")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"deleted": eventID}, nil)
	}
}
