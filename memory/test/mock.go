package memorytest

import (
	"context"

	"github.com/soartravel/soar/memory"
	"github.com/stretchr/testify/mock"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Add(ctx context.Context, text string, userID string) error {
	args := m.Called(ctx, text, userID)
	return args.Error(0)
}

func (m *StoreMock) Search(ctx context.Context, query string, userID string) ([]memory.Record, error) {
	args := m.Called(ctx, query, userID)
	records, _ := args.Get(0).([]memory.Record)
	return records, args.Error(1)
}

var (
	_ memory.Store = (*StoreMock)(nil)
)
