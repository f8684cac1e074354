package storage

import "github.com/cmw1990/quitopia-support-sub008/internal"

func NewFileRepositories(eventsFile, profilesFile string, logger internal.Logger) (EventRepository, ProfileRepository, error) {
	storage, err := NewFileStorage(eventsFile, profilesFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (EventRepository, ProfileRepository, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}
