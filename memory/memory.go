package memory

import (
	"context"
)

type (
	// Record is a memory as returned by the memory store. Score is only set on search results.
	Record struct {
		ID             string         `json:"id"`
		Text           string         `json:"memory"`
		OwnerUserID    string         `json:"user_id"`
		Metadata       map[string]any `json:"metadata,omitempty"`
		Categories     []string       `json:"categories,omitempty"`
		Immutable      bool           `json:"immutable,omitempty"`
		CreatedAt      string         `json:"created_at"`
		UpdatedAt      string         `json:"updated_at"`
		ExpirationDate *string        `json:"expiration_date,omitempty"`
		Score          *float64       `json:"score,omitempty"`
	}

	Store interface {
		// Add persists text as a memory owned by userID.
		Add(ctx context.Context, text string, userID string) error
		// Search returns the memories of userID relevant to query, in store order.
		Search(ctx context.Context, query string, userID string) ([]Record, error)
	}
)

const (
	ContentTypeTravelInfo = "travel_info"
	AppName               = "soar"
)

func (r *Record) ScoreOrZero() float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}
