package storage

import (
	"context"
	"errors"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

// ErrNotFound is returned when a requested entity does not exist or is
// not owned by the given user.
var ErrNotFound = errors.New("storage: not found")

type EventRepository interface {
	SaveEvent(ctx context.Context, event *internal.ConsumptionEvent) error
	ListEvents(ctx context.Context, userID string) ([]internal.ConsumptionEvent, error)
	UpdateEvent(ctx context.Context, event *internal.ConsumptionEvent) error
	DeleteEvent(ctx context.Context, userID, eventID string) error
}

type ProfileRepository interface {
	SetProfile(ctx context.Context, profile *internal.QuitProfile) error
	GetProfile(ctx context.Context, userID string) (*internal.QuitProfile, error)
}
