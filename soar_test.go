package soar_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/soartravel/soar"
	"github.com/soartravel/soar/config"
	"github.com/soartravel/soar/entity"
	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/internal/mylog"
	"github.com/soartravel/soar/llm"
	llmtest "github.com/soartravel/soar/llm/test"
	"github.com/soartravel/soar/memory"
	"github.com/soartravel/soar/memorysync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssistant_StatementIsRecalled(t *testing.T) {
	llmClient := &llmtest.ClientMock{}
	llmClient.On("Classify", mock.Anything, "My passport expires in June 2027").Return(llm.MessageTypeStatement, nil)
	llmClient.On("GenerateAcknowledgment", mock.Anything, "My passport expires in June 2027").Return("Got it!", nil)

	a, err := soar.NewAssistant(t.Context(),
		soar.WithOffline(true),
		soar.WithLogger(mylog.Discard()),
		soar.WithLLMClient(llmClient),
	)
	require.NoError(t, err)

	reply := a.Handle(t.Context(), "  My passport expires in June 2027 ", "u1")
	assert.Equal(t, "Got it!", reply)
	assert.False(t, a.IsProcessing())

	require.NoError(t, a.Close(t.Context()))

	text := a.RetrieveMemories(t.Context(), "passport", "u1")
	assert.Contains(t, text, "Memory 1: My passport expires in June 2027")
	llmClient.AssertExpectations(t)
}

func TestAssistant_SqliteLedgerSkipsSyncedTrips(t *testing.T) {
	conf := config.New()
	conf.Ledger.SqlitePath = filepath.Join(t.TempDir(), "ledger.db")

	memories := memory.NewInMemoryStore()
	a, err := soar.NewAssistant(t.Context(),
		soar.WithConfig(conf),
		soar.WithLogger(mylog.Discard()),
		soar.WithLLMClient(&llmtest.ClientMock{}),
		soar.WithMemoryStore(memories),
	)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, a.Close(t.Context()))
	}()

	trips := []entity.Trip{{
		ID:        "t1",
		Name:      "Lisbon",
		StartDate: time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2030, time.June, 8, 0, 0, 0, 0, time.UTC),
	}}

	result, err := a.SyncTrips(t.Context(), "u1", trips)
	require.NoError(t, err)
	assert.Equal(t, memorysync.Result{Synced: 1}, result)

	result, err = a.SyncTrips(t.Context(), "u1", trips)
	require.NoError(t, err)
	assert.Equal(t, memorysync.Result{Skipped: 1}, result)

	records, err := memories.Search(t.Context(), "Lisbon", "u1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAssistant_MissingCredentials(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		_, err := soar.NewAssistant(t.Context(), soar.WithOffline(true), soar.WithLogger(mylog.Discard()))
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})

	t.Run("memory store", func(t *testing.T) {
		_, err := soar.NewAssistant(t.Context(),
			soar.WithLogger(mylog.Discard()),
			soar.WithLLMClient(&llmtest.ClientMock{}),
		)
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})

	t.Run("unknown ledger driver", func(t *testing.T) {
		conf := config.New()
		conf.Ledger.Driver = "redis"
		_, err := soar.NewAssistant(t.Context(),
			soar.WithConfig(conf),
			soar.WithLogger(mylog.Discard()),
			soar.WithLLMClient(&llmtest.ClientMock{}),
			soar.WithMemoryStore(memory.NewInMemoryStore()),
		)
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})
}

func TestAssistant_CloseNil(t *testing.T) {
	var a *soar.Assistant
	assert.NoError(t, a.Close(t.Context()))
}
