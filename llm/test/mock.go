package llmtest

import (
	"context"

	"github.com/soartravel/soar/llm"
	"github.com/soartravel/soar/memory"
	"github.com/stretchr/testify/mock"
)

type ClientMock struct {
	mock.Mock
}

func (m *ClientMock) Classify(ctx context.Context, message string) (llm.MessageType, error) {
	args := m.Called(ctx, message)
	return args.Get(0).(llm.MessageType), args.Error(1)
}

func (m *ClientMock) GenerateResponse(ctx context.Context, query string, memories []memory.Record) (string, error) {
	args := m.Called(ctx, query, memories)
	return args.String(0), args.Error(1)
}

func (m *ClientMock) GenerateAcknowledgment(ctx context.Context, statement string) (string, error) {
	args := m.Called(ctx, statement)
	return args.String(0), args.Error(1)
}

func (m *ClientMock) WebSearch(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func (m *ClientMock) Reformat(ctx context.Context, rawResults string, query string) (string, error) {
	args := m.Called(ctx, rawResults, query)
	return args.String(0), args.Error(1)
}

var (
	_ llm.Client = (*ClientMock)(nil)
)
