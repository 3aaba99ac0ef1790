package memorysync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/soartravel/soar/entity"
	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/internal/mylog"
	"github.com/soartravel/soar/internal/mymetrics"
	"github.com/soartravel/soar/ledger"
	"github.com/soartravel/soar/memory"
)

const (
	kindPreference = "preference"

	defaultConcurrency = 8
)

type (
	// Result counts the outcome of one sync call. Synced items were written to memory and recorded in the
	// ledger; Skipped items were already in the ledger; Failed items will be retried by the next sync.
	Result struct {
		Synced  int `json:"synced"`
		Failed  int `json:"failed"`
		Skipped int `json:"skipped"`
	}

	// Synchronizer copies trips and flight bookings into the memory store at most once per item,
	// using the ledger to remember what was already written.
	Synchronizer struct {
		memories    memory.Store
		ledger      ledger.Store
		logger      *slog.Logger
		metrics     *mymetrics.Collector
		now         func() time.Time
		concurrency int
	}

	Option func(*Synchronizer)

	item struct {
		id     string
		owner  string
		format func(now time.Time) string
	}
)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

func WithMetrics(metrics *mymetrics.Collector) Option {
	return func(s *Synchronizer) {
		s.metrics = metrics
	}
}

// WithNow replaces the clock used for PAST/CURRENT/UPCOMING labels.
func WithNow(now func() time.Time) Option {
	return func(s *Synchronizer) {
		s.now = now
	}
}

// WithConcurrency bounds the number of items written at the same time.
func WithConcurrency(n int) Option {
	return func(s *Synchronizer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewSynchronizer(memories memory.Store, ledgerStore ledger.Store, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		memories:    memories,
		ledger:      ledgerStore,
		now:         time.Now,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = mylog.Discard()
	}
	return s
}

func (s *Synchronizer) SyncTrips(ctx context.Context, userID string, trips []entity.Trip) (Result, error) {
	items := lo.Map(trips, func(trip entity.Trip, _ int) item {
		return tripItem(trip)
	})
	return s.sync(ctx, userID, ledger.KindTrip, items)
}

func (s *Synchronizer) SyncFlightBookings(ctx context.Context, userID string, bookings []entity.FlightBooking) (Result, error) {
	items := lo.Map(bookings, func(booking entity.FlightBooking, _ int) item {
		return item{
			id:    booking.ID,
			owner: booking.UserID,
			format: func(now time.Time) string {
				return FormatFlightBooking(&booking, now)
			},
		}
	})
	return s.sync(ctx, userID, ledger.KindFlightBooking, items)
}

// SyncTrip writes a single trip unless the ledger already has it.
func (s *Synchronizer) SyncTrip(ctx context.Context, userID string, trip entity.Trip) error {
	if userID == "" {
		return errors.InvalidRequest(nil, "user id is required")
	}

	entry, err := s.ledger.Get(ctx, userID)
	if err != nil {
		return errors.Wrapf(err, "failed to read sync ledger")
	}
	if entry.Has(ledger.KindTrip, trip.ID) {
		s.logger.Debug("trip already synced", "user_id", userID, "trip_id", trip.ID)
		s.metrics.ObserveSyncItem(string(ledger.KindTrip), mymetrics.ResultSkipped)
		return nil
	}

	return s.syncItem(ctx, userID, ledger.KindTrip, tripItem(trip))
}

// SyncUserData runs the trip and flight booking syncs concurrently, as done when a user signs in.
func (s *Synchronizer) SyncUserData(
	ctx context.Context,
	userID string,
	trips []entity.Trip,
	bookings []entity.FlightBooking,
) (tripsResult Result, bookingsResult Result, err error) {
	var (
		wg                   sync.WaitGroup
		tripsErr, bookingErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tripsResult, tripsErr = s.SyncTrips(ctx, userID, trips)
	}()
	go func() {
		defer wg.Done()
		bookingsResult, bookingErr = s.SyncFlightBookings(ctx, userID, bookings)
	}()
	wg.Wait()

	return tripsResult, bookingsResult, errors.Join(tripsErr, bookingErr)
}

// SyncPreferences writes the onboarding travel preferences. Preferences are not tracked in the ledger,
// so every call writes again.
func (s *Synchronizer) SyncPreferences(ctx context.Context, pref entity.TravelPreference) (Result, error) {
	if pref.UserID == "" {
		return Result{}, errors.InvalidRequest(nil, "user id is required")
	}

	texts := FormatPreferences(&pref)
	result := s.fanOut(len(texts), func(i int) error {
		if err := s.memories.Add(ctx, texts[i], pref.UserID); err != nil {
			s.logger.Warn("failed to store preference in memory", "user_id", pref.UserID, "error", err)
			s.metrics.ObserveSyncItem(kindPreference, mymetrics.ResultFailure)
			return err
		}
		s.metrics.ObserveSyncItem(kindPreference, mymetrics.ResultSuccess)
		return nil
	})

	s.logger.Info("preferences synced", "user_id", pref.UserID, "synced", result.Synced, "failed", result.Failed)
	return result, nil
}

func (s *Synchronizer) sync(ctx context.Context, userID string, kind ledger.Kind, items []item) (Result, error) {
	if userID == "" {
		return Result{}, errors.InvalidRequest(nil, "user id is required")
	}

	// without the ledger every item would look new and be written twice
	entry, err := s.ledger.Get(ctx, userID)
	if err != nil {
		return Result{}, errors.Wrapf(err, "failed to read sync ledger")
	}

	items = lo.UniqBy(items, func(i item) string { return i.id })
	pending := lo.Filter(items, func(i item, _ int) bool {
		return !entry.Has(kind, i.id)
	})
	skipped := len(items) - len(pending)
	for range skipped {
		s.metrics.ObserveSyncItem(string(kind), mymetrics.ResultSkipped)
	}

	result := s.fanOut(len(pending), func(i int) error {
		return s.syncItem(ctx, userID, kind, pending[i])
	})
	result.Skipped = skipped

	s.logger.Info("memory sync finished",
		"user_id", userID,
		"kind", kind,
		"synced", result.Synced,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

// syncItem writes one item and then records it. An item only counts as synced when both steps succeed.
func (s *Synchronizer) syncItem(ctx context.Context, userID string, kind ledger.Kind, it item) (err error) {
	defer func() {
		if err != nil {
			s.logger.Warn("failed to sync item", "user_id", userID, "kind", kind, "id", it.id, "error", err)
			s.metrics.ObserveSyncItem(string(kind), mymetrics.ResultFailure)
		} else {
			s.metrics.ObserveSyncItem(string(kind), mymetrics.ResultSuccess)
		}
	}()

	if it.id == "" {
		return errors.InvalidRequest(nil, "%s has no id", kind)
	}
	if it.owner != "" && it.owner != userID {
		return errors.InvalidRequest(nil, "%s %s belongs to another user", kind, it.id)
	}

	if err := s.memories.Add(ctx, it.format(s.now()), userID); err != nil {
		return errors.Wrapf(err, "failed to store %s %s in memory", kind, it.id)
	}
	if err := s.ledger.Add(ctx, userID, kind, it.id); err != nil {
		// the memory exists but is not recorded, so the next sync writes it again
		return errors.Wrapf(err, "failed to record %s %s in sync ledger", kind, it.id)
	}
	return nil
}

// fanOut runs fn for 0..n-1 with bounded concurrency and counts the outcomes once all have finished.
func (s *Synchronizer) fanOut(n int, fn func(i int) error) Result {
	var (
		result Result
		mu     sync.Mutex
		wg     sync.WaitGroup
		sem    = make(chan struct{}, s.concurrency)
	)

	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := fn(i)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
			} else {
				result.Synced++
			}
		}()
	}
	wg.Wait()

	return result
}

func tripItem(trip entity.Trip) item {
	return item{
		id:    trip.ID,
		owner: trip.UserID,
		format: func(now time.Time) string {
			return FormatTrip(&trip, now)
		},
	}
}
