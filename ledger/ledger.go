package ledger

import (
	"context"
	"slices"

	"github.com/soartravel/soar/errors"
)

// Kind names one of the per-user synced-ID sets.
type Kind string

const (
	KindTrip          Kind = "trip"
	KindFlightBooking Kind = "flight_booking"
)

func (k Kind) Valid() bool {
	return k == KindTrip || k == KindFlightBooking
}

type (
	// Entry is the ledger of one user. A missing entry reads as an Entry with empty sets.
	Entry struct {
		UserID                 string   `json:"userId"`
		SyncedTripIDs          []string `json:"syncedTripIds"`
		SyncedFlightBookingIDs []string `json:"syncedFlightBookingIds"`
	}

	// Store persists ledger entries. Add is a set union: concurrent Adds for the same user never lose IDs
	// and an entry never shrinks.
	Store interface {
		Get(ctx context.Context, userID string) (*Entry, error)
		Add(ctx context.Context, userID string, kind Kind, ids ...string) error
	}
)

func (e *Entry) IDs(kind Kind) []string {
	if e == nil {
		return nil
	}
	switch kind {
	case KindTrip:
		return e.SyncedTripIDs
	case KindFlightBooking:
		return e.SyncedFlightBookingIDs
	default:
		return nil
	}
}

func (e *Entry) Has(kind Kind, id string) bool {
	return slices.Contains(e.IDs(kind), id)
}

func validateAdd(userID string, kind Kind) error {
	if userID == "" {
		return errors.InvalidRequest(nil, "user id is required")
	}
	if !kind.Valid() {
		return errors.InvalidRequest(nil, "unknown ledger kind %q", kind)
	}
	return nil
}
