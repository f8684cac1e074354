package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

var validate = validator.New()

type EventRequest struct {
	ProductType          string `json:"product_type" validate:"required,oneof=cigarette vape cigar pipe chewing_tobacco other"`
	Quantity             int    `json:"quantity" validate:"gte=0"`
	Unit                 string `json:"unit" validate:"required"`
	ConsumptionTimestamp string `json:"consumption_timestamp" validate:"required"`
	Trigger              string `json:"trigger,omitempty" validate:"omitempty"`
	Location             string `json:"location,omitempty" validate:"omitempty"`
	Mood                 string `json:"mood,omitempty" validate:"omitempty,oneof=stressed anxious bored relaxed happy sad angry neutral"`
	Intensity            *int   `json:"intensity,omitempty" validate:"omitempty,gte=0,lte=10"`
	Notes                string `json:"notes,omitempty" validate:"omitempty"`
}

func ValidateEventRequest(body *EventRequest) error {
	if err := validate.Struct(body); err != nil {
		return err
	}
	if _, err := time.Parse(time.RFC3339, body.ConsumptionTimestamp); err != nil {
		return fmt.Errorf("consumption_timestamp must be RFC3339: %w", err)
	}
	return nil
}

func CreateEvent(ctx context.Context, eventRepo storage.EventRepository, user *internal.User, body *EventRequest) (*internal.ConsumptionEvent, error) {
	event := &internal.ConsumptionEvent{
		ID:                   uuid.NewString(),
		UserID:               user.ID,
		ProductType:          internal.ProductType(body.ProductType),
		Quantity:             body.Quantity,
		Unit:                 body.Unit,
		ConsumptionTimestamp: body.ConsumptionTimestamp,
		Trigger:              body.Trigger,
		Location:             body.Location,
		Mood:                 internal.Mood(body.Mood),
		Intensity:            body.Intensity,
		Notes:                body.Notes,
		CreatedAt:            time.Now().UTC(),
	}
	if err := eventRepo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent replaces the mutable fields of an event the user owns.
func UpdateEvent(ctx context.Context, eventRepo storage.EventRepository, user *internal.User, eventID string, body *EventRequest) (*internal.ConsumptionEvent, error) {
	event := &internal.ConsumptionEvent{
		ID:                   eventID,
		UserID:               user.ID,
		ProductType:          internal.ProductType(body.ProductType),
		Quantity:             body.Quantity,
		Unit:                 body.Unit,
		ConsumptionTimestamp: body.ConsumptionTimestamp,
		Trigger:              body.Trigger,
		Location:             body.Location,
		Mood:                 internal.Mood(body.Mood),
		Intensity:            body.Intensity,
		Notes:                body.Notes,
	}
	if err := eventRepo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func DeleteEvent(ctx context.Context, eventRepo storage.EventRepository, user *internal.User, eventID string) error {
	return eventRepo.DeleteEvent(ctx, user.ID, eventID)
}
