package ledger

import (
	"context"
	"slices"
	"sync"

	"github.com/soartravel/soar/errors"
)

type InMemoryStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

var (
	_ Store = (*InMemoryStore)(nil)
)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]*Entry),
	}
}

func (s *InMemoryStore) Get(_ context.Context, userID string) (*Entry, error) {
	if userID == "" {
		return nil, errors.InvalidRequest(nil, "user id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return &Entry{UserID: userID}, nil
	}
	return &Entry{
		UserID:                 userID,
		SyncedTripIDs:          slices.Clone(entry.SyncedTripIDs),
		SyncedFlightBookingIDs: slices.Clone(entry.SyncedFlightBookingIDs),
	}, nil
}

func (s *InMemoryStore) Add(_ context.Context, userID string, kind Kind, ids ...string) error {
	if err := validateAdd(userID, kind); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		entry = &Entry{UserID: userID}
		s.entries[userID] = entry
	}

	set := &entry.SyncedTripIDs
	if kind == KindFlightBooking {
		set = &entry.SyncedFlightBookingIDs
	}
	for _, id := range ids {
		if id != "" && !slices.Contains(*set, id) {
			*set = append(*set, id)
		}
	}
	return nil
}
