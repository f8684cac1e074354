package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/service"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

func PutProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: quit anchor required")
			return
		}

		if err := service.ValidateProfileRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Profile validation failed")
			return
		}

		profile, err := service.SetQuitProfile(c.Request.Context(), app.ProfileRepo(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save profile")
			return
		}

		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

func GetProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), user.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "No quit profile set")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to fetch profile")
			return
		}

		HandleSuccess(c, app.Logger(), profile, nil)
	}
}
