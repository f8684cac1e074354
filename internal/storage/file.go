package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cmw1990/quitopia-support-sub008/internal"
)

type FileStorage struct {
	events            map[string]*internal.ConsumptionEvent   // id -> event
	userEventIndex    map[string][]*internal.ConsumptionEvent // userID -> events sorted descending by occurrence
	profiles          map[string]*internal.QuitProfile        // userID -> profile
	mu                sync.RWMutex
	eventsFile        string
	profilesFile      string
	logger            internal.Logger
	saveEventsChan    chan struct{}
	saveProfilesChan  chan struct{}
	shutdownChan      chan struct{}
	saveEventsDelay   time.Duration
	saveProfilesDelay time.Duration
}

// NewFileStorage loads the JSON data files (missing files are treated
// as empty) and starts the debounced save workers.
func NewFileStorage(eventsFile, profilesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		events:            make(map[string]*internal.ConsumptionEvent),
		userEventIndex:    make(map[string][]*internal.ConsumptionEvent),
		profiles:          make(map[string]*internal.QuitProfile),
		eventsFile:        eventsFile,
		profilesFile:      profilesFile,
		logger:            logger,
		saveEventsChan:    make(chan struct{}, 1),
		saveProfilesChan:  make(chan struct{}, 1),
		shutdownChan:      make(chan struct{}),
		saveEventsDelay:   500 * time.Millisecond,
		saveProfilesDelay: 500 * time.Millisecond,
	}

	if err := s.loadEvents(); err != nil {
		return nil, err
	}
	if err := s.loadProfiles(); err != nil {
		return nil, err
	}

	go s.saveEventsWorker()
	go s.saveProfilesWorker()

	return s, nil
}

// occurrence is the ordering key for the per-user index. Events whose
// timestamp does not parse fall back to CreatedAt so they still get a
// stable position.
func occurrence(e *internal.ConsumptionEvent) time.Time {
	if t, ok := e.OccurredAt(); ok {
		return t
	}
	return e.CreatedAt
}

func (s *FileStorage) loadEvents() error {
	file, err := os.Open(s.eventsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var events []*internal.ConsumptionEvent
	if err := json.NewDecoder(file).Decode(&events); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		s.events[e.ID] = e
		s.insertIndexedLocked(e)
	}
	return nil
}

func (s *FileStorage) loadProfiles() error {
	file, err := os.Open(s.profilesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var profiles []*internal.QuitProfile
	if err := json.NewDecoder(file).Decode(&profiles); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveEvents() error {
	s.mu.RLock()
	events := make([]*internal.ConsumptionEvent, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.eventsFile, events)
}

func (s *FileStorage) saveProfiles() error {
	s.mu.RLock()
	profiles := make([]*internal.QuitProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.profilesFile, profiles)
}

// saveEventsWorker batches save operations to avoid a disk write per
// request.
func (s *FileStorage) saveEventsWorker() {
	timer := time.NewTimer(s.saveEventsDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveEventsChan:
			timer.Reset(s.saveEventsDelay)
		case <-timer.C:
			if err := s.saveEvents(); err != nil {
				s.logger.Errorf("storage: error saving events: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) saveProfilesWorker() {
	timer := time.NewTimer(s.saveProfilesDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveProfilesChan:
			timer.Reset(s.saveProfilesDelay)
		case <-timer.C:
			if err := s.saveProfiles(); err != nil {
				s.logger.Errorf("storage: error saving profiles: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// insertIndexedLocked inserts the event into the per-user index,
// keeping it sorted descending by occurrence. Caller holds mu.
func (s *FileStorage) insertIndexedLocked(event *internal.ConsumptionEvent) {
	list := s.userEventIndex[event.UserID]
	at := occurrence(event)
	inserted := false
	for i, existing := range list {
		if occurrence(existing).Before(at) {
			list = append(list[:i], append([]*internal.ConsumptionEvent{event}, list[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		list = append(list, event)
	}
	s.userEventIndex[event.UserID] = list
}

// removeIndexedLocked drops the event from the per-user index. Caller
// holds mu.
func (s *FileStorage) removeIndexedLocked(event *internal.ConsumptionEvent) {
	list := s.userEventIndex[event.UserID]
	for i, existing := range list {
		if existing.ID == event.ID {
			s.userEventIndex[event.UserID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (s *FileStorage) signalSaveEvents() {
	select {
	case s.saveEventsChan <- struct{}{}:
	default:
	}
}

// --- EventRepository ---

func (s *FileStorage) SaveEvent(ctx context.Context, event *internal.ConsumptionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.ID] = event
	s.insertIndexedLocked(event)
	s.signalSaveEvents()
	return nil
}

func (s *FileStorage) ListEvents(ctx context.Context, userID string) ([]internal.ConsumptionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listPtr, ok := s.userEventIndex[userID]
	if !ok {
		return []internal.ConsumptionEvent{}, nil
	}

	events := make([]internal.ConsumptionEvent, len(listPtr))
	for i, e := range listPtr {
		events[i] = *e
	}
	return events, nil
}

func (s *FileStorage) UpdateEvent(ctx context.Context, event *internal.ConsumptionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.events[event.ID]
	if !ok || existing.UserID != event.UserID {
		return ErrNotFound
	}

	// Re-index since the occurrence time may have changed.
	s.removeIndexedLocked(existing)
	s.events[event.ID] = event
	s.insertIndexedLocked(event)
	s.signalSaveEvents()
	return nil
}

func (s *FileStorage) DeleteEvent(ctx context.Context, userID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.events[eventID]
	if !ok || existing.UserID != userID {
		return ErrNotFound
	}

	delete(s.events, eventID)
	s.removeIndexedLocked(existing)
	s.signalSaveEvents()
	return nil
}

// --- ProfileRepository ---

func (s *FileStorage) SetProfile(ctx context.Context, profile *internal.QuitProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = profile
	select {
	case s.saveProfilesChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) GetProfile(ctx context.Context, userID string) (*internal.QuitProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

// Close stops the background workers and flushes pending data.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveEvents(); err != nil {
		return err
	}
	return s.saveProfiles()
}

// --- Compile-time assertions ---
var _ EventRepository = (*FileStorage)(nil)
var _ ProfileRepository = (*FileStorage)(nil)
