package service

import (
	"context"

	"github.com/Harshitk-cp/behavenet/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTickStore mocks the TickStore interface.
type MockTickStore struct {
	mock.Mock
}

func (m *MockTickStore) Create(ctx context.Context, r *domain.TickRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockTickStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TickRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TickRecord), args.Error(1)
}

func (m *MockTickStore) ListRecent(ctx context.Context, runID uuid.UUID, limit int) ([]domain.TickRecord, error) {
	args := m.Called(ctx, runID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TickRecord), args.Error(1)
}
