package ledger

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 100

type (
	// SyncedItem is one member of a user's synced set. The composite primary key makes inserts a set union.
	SyncedItem struct {
		UserID    string `gorm:"primaryKey;size:128"`
		Kind      Kind   `gorm:"primaryKey;size:32"`
		EntityID  string `gorm:"primaryKey;size:255"`
		CreatedAt time.Time
	}

	SqliteStore struct {
		db *gorm.DB
	}
)

var (
	_ Store = (*SqliteStore)(nil)
)

func (SyncedItem) TableName() string {
	return "memory_sync_ledger"
}

func NewSqliteStore(ctx context.Context, gormDB *gorm.DB) (*SqliteStore, error) {
	if err := db.AutoMigrate(ctx, gormDB, &SyncedItem{}); err != nil {
		return nil, errors.Wrapf(err, "failed to migrate ledger table")
	}
	return &SqliteStore{db: gormDB}, nil
}

func (s *SqliteStore) Get(ctx context.Context, userID string) (*Entry, error) {
	if userID == "" {
		return nil, errors.InvalidRequest(nil, "user id is required")
	}

	var items []SyncedItem
	if err := db.Session(ctx, s.db).Where("user_id = ?", userID).Order("created_at, entity_id").Find(&items).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to read ledger of %s", userID)
	}

	entry := &Entry{UserID: userID}
	for _, item := range items {
		switch item.Kind {
		case KindTrip:
			entry.SyncedTripIDs = append(entry.SyncedTripIDs, item.EntityID)
		case KindFlightBooking:
			entry.SyncedFlightBookingIDs = append(entry.SyncedFlightBookingIDs, item.EntityID)
		}
	}
	return entry, nil
}

func (s *SqliteStore) Add(ctx context.Context, userID string, kind Kind, ids ...string) error {
	if err := validateAdd(userID, kind); err != nil {
		return err
	}

	ids = lo.Uniq(lo.Compact(ids))
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	items := lo.Map(ids, func(id string, _ int) SyncedItem {
		return SyncedItem{UserID: userID, Kind: kind, EntityID: id, CreatedAt: now}
	})

	// all ids of one call land together or not at all
	if err := db.Transaction(ctx, s.db, func(ctx context.Context) error {
		return db.Session(ctx, s.db).
			Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(&items, insertBatchSize).
			Error
	}); err != nil {
		return errors.Wrapf(err, "failed to add %d %s ids to ledger of %s", len(ids), kind, userID)
	}
	return nil
}
