package service

import (
	"context"
	"time"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

type ProfileRequest struct {
	QuitAnchor               time.Time `json:"quit_anchor_timestamp" validate:"required"`
	BaselineDailyConsumption float64   `json:"baseline_daily_consumption" validate:"gte=0"`
	CostPerPack              float64   `json:"cost_per_pack" validate:"gte=0"`
	UnitsPerPack             int       `json:"units_per_pack" validate:"gte=0"`
}

func ValidateProfileRequest(req *ProfileRequest) error {
	return validate.Struct(req)
}

// SetQuitProfile creates or replaces the user's single quit profile.
func SetQuitProfile(ctx context.Context, profileRepo storage.ProfileRepository, user *internal.User, req *ProfileRequest) (*internal.QuitProfile, error) {
	profile := &internal.QuitProfile{
		UserID:                   user.ID,
		QuitAnchor:               req.QuitAnchor,
		BaselineDailyConsumption: req.BaselineDailyConsumption,
		CostPerPack:              req.CostPerPack,
		UnitsPerPack:             req.UnitsPerPack,
		UpdatedAt:                time.Now().UTC(),
	}
	if err := profileRepo.SetProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
