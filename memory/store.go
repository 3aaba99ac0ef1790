package memory

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/soartravel/soar/errors"
	"gonum.org/v1/gonum/mat"
)

type (
	// InMemoryStore keeps memories in process and ranks them by bag-of-words cosine similarity.
	// It backs offline mode and tests.
	InMemoryStore struct {
		mu       sync.RWMutex
		memories map[string][]storedMemory
		now      func() time.Time
	}

	storedMemory struct {
		record Record
		terms  map[string]float64
		norm   float64
	}
)

var (
	_ Store = (*InMemoryStore)(nil)
)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		memories: make(map[string][]storedMemory),
		now:      time.Now,
	}
}

func (s *InMemoryStore) Add(_ context.Context, text string, userID string) error {
	if userID == "" {
		return errors.InvalidRequest(nil, "user id is required")
	}
	if strings.TrimSpace(text) == "" {
		return errors.InvalidRequest(nil, "memory text is empty")
	}

	now := s.now().UTC().Format(time.RFC3339)
	terms := termFrequencies(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.memories[userID] = append(s.memories[userID], storedMemory{
		record: Record{
			ID:          uuid.NewString(),
			Text:        text,
			OwnerUserID: userID,
			Metadata: map[string]any{
				"content_type": ContentTypeTravelInfo,
				"app":          AppName,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		terms: terms,
		norm:  norm(terms),
	})
	return nil
}

// Search scores every memory of userID against query and returns those sharing at least one term, in insertion order.
func (s *InMemoryStore) Search(_ context.Context, query string, userID string) ([]Record, error) {
	if userID == "" {
		return nil, errors.InvalidRequest(nil, "user id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	memories := s.memories[userID]
	queryTerms := termFrequencies(query)
	if len(memories) == 0 || len(queryTerms) == 0 {
		return []Record{}, nil
	}

	vocabulary := make([]string, 0, len(queryTerms))
	queryData := make([]float64, 0, len(queryTerms))
	for term, freq := range queryTerms {
		vocabulary = append(vocabulary, term)
		queryData = append(queryData, freq)
	}

	// memories (N x V) * query (V) = dot products over the query vocabulary
	memoryData := make([]float64, len(memories)*len(vocabulary))
	for i, m := range memories {
		for j, term := range vocabulary {
			memoryData[i*len(vocabulary)+j] = m.terms[term]
		}
	}
	queryVector := mat.NewVecDense(len(vocabulary), queryData)
	memoryMatrix := mat.NewDense(len(memories), len(vocabulary), memoryData)

	var dots mat.VecDense
	dots.MulVec(memoryMatrix, queryVector)

	queryNorm := mat.Norm(queryVector, 2)
	results := make([]Record, 0, len(memories))
	for i, m := range memories {
		dot := dots.AtVec(i)
		if dot == 0 || m.norm == 0 {
			continue
		}
		score := dot / (queryNorm * m.norm)
		record := m.record
		record.Score = &score
		results = append(results, record)
	}

	return results, nil
}

func termFrequencies(text string) map[string]float64 {
	terms := make(map[string]float64)
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(word)) < 2 {
			continue
		}
		terms[word]++
	}
	return terms
}

func norm(terms map[string]float64) float64 {
	var sum float64
	for _, v := range terms {
		sum += v * v
	}
	return math.Sqrt(sum)
}
