package chat_test

import (
	"testing"

	"github.com/mokiat/gog"
	"github.com/soartravel/soar/chat"
	"github.com/soartravel/soar/errors"
	llmtest "github.com/soartravel/soar/llm/test"
	"github.com/soartravel/soar/memory"
	memorytest "github.com/soartravel/soar/memory/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFormatMemories(t *testing.T) {
	assert.Equal(t, chat.NoMemoriesFound, chat.FormatMemories(nil))

	got := chat.FormatMemories([]memory.Record{
		{Text: "Flight KE123", Score: gog.PtrOf(0.5)},
		{Text: "Trip to Tokyo", Score: gog.PtrOf(0.87)},
		{Text: "Passport 123456"},
	})
	assert.Equal(t,
		"Here's what I found in your travel information:\n\n"+
			"Memory 1: Trip to Tokyo\nRelevance: 87%\n"+
			"\n---\n\n"+
			"Memory 2: Flight KE123\nRelevance: 50%\n"+
			"\n---\n\n"+
			"Memory 3: Passport 123456\n",
		got,
	)
}

func TestBulletFallback(t *testing.T) {
	got := chat.BulletFallback([]memory.Record{{Text: "a"}, {Text: "b"}})
	assert.Equal(t, "Based on your travel information:\n\n• a\n\n• b\n", got)
}

func TestRetrieveMemories(t *testing.T) {
	store := &memorytest.StoreMock{}
	store.On("Search", mock.Anything, "tokyo", "u1").Return([]memory.Record{{Text: "Trip to Tokyo"}}, nil).Once()
	store.On("Search", mock.Anything, "tokyo", "u2").Return(nil, errors.Transport(nil, "offline")).Once()

	orchestrator := chat.NewOrchestrator(store, &llmtest.ClientMock{})

	assert.Equal(t, "Here's what I found in your travel information:\n\nMemory 1: Trip to Tokyo\n", orchestrator.RetrieveMemories(t.Context(), "tokyo", "u1"))
	assert.NotEmpty(t, orchestrator.RetrieveMemories(t.Context(), "tokyo", "u2"))
	store.AssertExpectations(t)
}
