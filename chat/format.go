package chat

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/soartravel/soar/memory"
)

const (
	NoMemoriesFound     = "No relevant memories found."
	memoriesUnavailable = "Sorry, I couldn't retrieve your travel information right now."
	memoriesHeader      = "Here's what I found in your travel information:\n\n"
	memoriesSeparator   = "\n---\n\n"
)

// RetrieveMemories searches the user's memories and renders them for display.
func (o *Orchestrator) RetrieveMemories(ctx context.Context, query string, userID string) string {
	records, err := o.memories.Search(ctx, query, userID)
	if err != nil {
		o.logger.Warn("failed to retrieve memories", "user_id", userID, "error", err)
		return memoriesUnavailable
	}
	return FormatMemories(records)
}

// FormatMemories renders records by descending score with their relevance as a percentage.
func FormatMemories(records []memory.Record) string {
	if len(records) == 0 {
		return NoMemoriesFound
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b memory.Record) int {
		return cmp.Compare(b.ScoreOrZero(), a.ScoreOrZero())
	})

	parts := make([]string, 0, len(sorted))
	for i, r := range sorted {
		part := fmt.Sprintf("Memory %d: %s\n", i+1, r.Text)
		if r.Score != nil {
			part += fmt.Sprintf("Relevance: %d%%\n", int(*r.Score*100))
		}
		parts = append(parts, part)
	}
	return memoriesHeader + strings.Join(parts, memoriesSeparator)
}
