package api

import (
	"github.com/cmw1990/quitopia-support-sub008/internal"
	"github.com/cmw1990/quitopia-support-sub008/internal/storage"
)

// App is the dependency surface handlers draw on.
type App interface {
	Logger() internal.Logger
	EventRepo() storage.EventRepository
	ProfileRepo() storage.ProfileRepository
}
