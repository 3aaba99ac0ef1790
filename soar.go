package soar

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/soartravel/soar/chat"
	"github.com/soartravel/soar/config"
	"github.com/soartravel/soar/entity"
	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/internal/db"
	"github.com/soartravel/soar/internal/mylog"
	"github.com/soartravel/soar/internal/mymetrics"
	"github.com/soartravel/soar/ledger"
	"github.com/soartravel/soar/llm"
	"github.com/soartravel/soar/memory"
	"github.com/soartravel/soar/memorysync"
)

type (
	// Assistant wires the chat orchestrator and the memory synchronizer onto one memory store.
	Assistant struct {
		conf    *config.Config
		logger  *slog.Logger
		metrics *mymetrics.Collector
		offline bool

		memories  memory.Store
		llmClient llm.Client
		ledger    ledger.Store

		orchestrator *chat.Orchestrator
		synchronizer *memorysync.Synchronizer

		closers []func() error
	}
	Option func(*Assistant)
)

func WithConfig(conf *config.Config) Option {
	return func(a *Assistant) {
		a.conf = conf
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

func WithMetrics(metrics *mymetrics.Collector) Option {
	return func(a *Assistant) {
		a.metrics = metrics
	}
}

// WithOffline keeps memories and the sync ledger in process. Only the LLM is remote.
func WithOffline(offline bool) Option {
	return func(a *Assistant) {
		a.offline = offline
	}
}

func WithMemoryStore(store memory.Store) Option {
	return func(a *Assistant) {
		a.memories = store
	}
}

func WithLLMClient(client llm.Client) Option {
	return func(a *Assistant) {
		a.llmClient = client
	}
}

func WithLedgerStore(store ledger.Store) Option {
	return func(a *Assistant) {
		a.ledger = store
	}
}

func NewAssistant(ctx context.Context, optionFuncs ...Option) (*Assistant, error) {
	a := &Assistant{}
	for _, f := range optionFuncs {
		f(a)
	}

	if a.conf == nil {
		a.conf = config.New()
	}
	if a.logger == nil {
		a.logger = mylog.NewLogger(a.conf.Log.LogLevel, a.conf.Log.LogHandler)
	}
	if a.metrics == nil {
		a.metrics = mymetrics.NewCollector()
	}

	var err error
	if a.llmClient == nil {
		a.llmClient, err = llm.NewOpenAIClient(&a.conf.OpenAI, llm.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
	}

	if a.memories == nil {
		a.memories, err = a.newMemoryStore()
		if err != nil {
			return nil, err
		}
	}

	if a.ledger == nil {
		a.ledger, err = a.newLedgerStore(ctx)
		if err != nil {
			a.closeResources()
			return nil, err
		}
	}

	recorder := chat.NewRecorder(
		a.memories,
		chat.WithRecorderLogger(a.logger),
		chat.WithRecorderMetrics(a.metrics),
		chat.WithWriteTimeout(a.conf.Chat.StatementWriteTimeout),
		chat.WithConcurrency(a.conf.Chat.StatementConcurrency),
	)
	a.orchestrator = chat.NewOrchestrator(
		a.memories,
		a.llmClient,
		chat.WithLogger(a.logger),
		chat.WithMetrics(a.metrics),
		chat.WithRecorder(recorder),
	)
	a.synchronizer = memorysync.NewSynchronizer(
		a.memories,
		a.ledger,
		memorysync.WithLogger(a.logger),
		memorysync.WithMetrics(a.metrics),
		memorysync.WithConcurrency(a.conf.Sync.Concurrency),
	)

	a.logger.Debug("assistant ready", "offline", a.offline, "ledger_driver", a.ledgerDriver())
	return a, nil
}

func (a *Assistant) newMemoryStore() (memory.Store, error) {
	if a.offline {
		return memory.NewInMemoryStore(), nil
	}
	return memory.NewClient(
		a.conf.Memory.APIKey,
		a.conf.Memory.BaseURL,
		memory.WithLogger(a.logger),
		memory.WithHTTPClient(&http.Client{Timeout: a.conf.Memory.Timeout}),
	)
}

func (a *Assistant) newLedgerStore(ctx context.Context) (ledger.Store, error) {
	switch a.ledgerDriver() {
	case config.LedgerDriverMemory:
		return ledger.NewInMemoryStore(), nil
	case config.LedgerDriverSqlite:
		gormDB, err := db.OpenSqlite(a.conf.Ledger.SqlitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return db.CloseDB(gormDB) })
		return ledger.NewSqliteStore(ctx, gormDB)
	case config.LedgerDriverDynamoDB:
		return ledger.NewDynamoStoreFromConfig(ctx, &a.conf.Ledger)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown ledger driver %q", a.conf.Ledger.Driver)
	}
}

func (a *Assistant) ledgerDriver() string {
	if a.offline {
		return config.LedgerDriverMemory
	}
	return a.conf.Ledger.Driver
}

// Handle answers one chat message. It always returns a reply.
func (a *Assistant) Handle(ctx context.Context, message string, userID string) string {
	return a.orchestrator.Handle(ctx, message, userID)
}

func (a *Assistant) IsProcessing() bool {
	return a.orchestrator.IsProcessing()
}

func (a *Assistant) RetrieveMemories(ctx context.Context, query string, userID string) string {
	return a.orchestrator.RetrieveMemories(ctx, query, userID)
}

func (a *Assistant) SyncTrips(ctx context.Context, userID string, trips []entity.Trip) (memorysync.Result, error) {
	return a.synchronizer.SyncTrips(ctx, userID, trips)
}

func (a *Assistant) SyncFlightBookings(ctx context.Context, userID string, bookings []entity.FlightBooking) (memorysync.Result, error) {
	return a.synchronizer.SyncFlightBookings(ctx, userID, bookings)
}

func (a *Assistant) SyncTrip(ctx context.Context, userID string, trip entity.Trip) error {
	return a.synchronizer.SyncTrip(ctx, userID, trip)
}

func (a *Assistant) SyncUserData(
	ctx context.Context,
	userID string,
	trips []entity.Trip,
	bookings []entity.FlightBooking,
) (memorysync.Result, memorysync.Result, error) {
	return a.synchronizer.SyncUserData(ctx, userID, trips, bookings)
}

func (a *Assistant) SyncPreferences(ctx context.Context, pref entity.TravelPreference) (memorysync.Result, error) {
	return a.synchronizer.SyncPreferences(ctx, pref)
}

func (a *Assistant) Metrics() *mymetrics.Collector {
	return a.metrics
}

func (a *Assistant) Logger() *slog.Logger {
	return a.logger
}

// Close waits for pending statement writes, bounded by ctx, and releases the ledger database.
// Closing a nil Assistant is a no-op.
func (a *Assistant) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	err := a.orchestrator.Recorder().Close(ctx)
	return errors.Join(err, a.closeResources())
}

func (a *Assistant) closeResources() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
