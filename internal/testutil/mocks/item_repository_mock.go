package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/repasoapp/repaso/internal/models"
)

// MockItemRepository is a mock implementation of repository.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetByTaskID(ctx context.Context, taskID string) (*models.RepetitionItem, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepetitionItem), args.Error(1)
}

func (m *MockItemRepository) Upsert(ctx context.Context, item models.RepetitionItem) (*models.RepetitionItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepetitionItem), args.Error(1)
}

func (m *MockItemRepository) UpdateSchedule(ctx context.Context, id int64, schedule models.ReviewSchedule) error {
	args := m.Called(ctx, id, schedule)
	return args.Error(0)
}

func (m *MockItemRepository) ListDue(ctx context.Context, asOf time.Time) ([]models.RepetitionItem, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepetitionItem), args.Error(1)
}

func (m *MockItemRepository) ListByReviewDay(ctx context.Context, day time.Time) ([]models.RepetitionItem, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepetitionItem), args.Error(1)
}

func (m *MockItemRepository) ListAll(ctx context.Context) ([]models.RepetitionItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepetitionItem), args.Error(1)
}

func (m *MockItemRepository) InsertReviewLog(ctx context.Context, itemID int64, grade int, correct bool, timeSpentMs int64) error {
	args := m.Called(ctx, itemID, grade, correct, timeSpentMs)
	return args.Error(0)
}
