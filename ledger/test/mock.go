package ledgertest

import (
	"context"

	"github.com/soartravel/soar/ledger"
	"github.com/stretchr/testify/mock"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Get(ctx context.Context, userID string) (*ledger.Entry, error) {
	args := m.Called(ctx, userID)
	entry, _ := args.Get(0).(*ledger.Entry)
	return entry, args.Error(1)
}

func (m *StoreMock) Add(ctx context.Context, userID string, kind ledger.Kind, ids ...string) error {
	args := m.Called(ctx, userID, kind, ids)
	return args.Error(0)
}

var (
	_ ledger.Store = (*StoreMock)(nil)
)
