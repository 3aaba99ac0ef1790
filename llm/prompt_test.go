package llm_test

import (
	"testing"
	"time"

	"github.com/soartravel/soar/llm"
	"github.com/soartravel/soar/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponsePrompt(t *testing.T) {
	now := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	prompt, err := llm.ResponsePrompt(now, "What are my upcoming trips?", []memory.Record{
		{Text: "UPCOMING TRIP: Trip to Paris\n"},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Today's date is January 5, 2026.")
	assert.Contains(t, prompt, "Here is relevant information from their travel profile:\n1. UPCOMING TRIP: Trip to Paris\n")
	assert.Contains(t, prompt, "relative to today's date (January 5, 2026)")
}

func TestClassifyPrompt(t *testing.T) {
	prompt, err := llm.ClassifyPrompt("Is it raining in Osaka?")
	require.NoError(t, err)

	assert.Contains(t, prompt, `Respond with only one word: "QUERY", "STATEMENT", or "WEB_SEARCH".`)
	assert.Contains(t, prompt, `Message: "Is it raining in Osaka?"`)
}
