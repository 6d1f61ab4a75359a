package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/services"
	"github.com/repasoapp/repaso/internal/srs"
	"github.com/repasoapp/repaso/internal/testutil/mocks"
)

func newReviewService(items *mocks.MockItemRepository) services.ReviewService {
	return services.NewReviewService(items, srs.New(srs.DefaultConfig()))
}

func TestRecordAnswer_InvalidGradeNoStorageCalls(t *testing.T) {
	items := new(mocks.MockItemRepository)
	svc := newReviewService(items)

	for _, grade := range []int{-1, 6} {
		_, err := svc.RecordAnswer(context.Background(), "task-1", models.Answer{Grade: grade})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrCodeInvalidGrade, appErr.Code)
	}

	// No expectations were set, so any repository call would have
	// panicked inside the mock.
	items.AssertExpectations(t)
}

func TestRecordAnswer_LazyCreatesItemOnFirstAnswer(t *testing.T) {
	items := new(mocks.MockItemRepository)
	svc := newReviewService(items)
	ctx := context.Background()

	items.On("GetByTaskID", ctx, "task-new").Return(nil, nil)

	var upserted models.RepetitionItem
	items.On("Upsert", ctx, mock.MatchedBy(func(item models.RepetitionItem) bool {
		upserted = item
		return item.TaskID == "task-new"
	})).Return(&models.RepetitionItem{ID: 7, TaskID: "task-new"}, nil)
	items.On("InsertReviewLog", ctx, int64(7), 4, true, int64(3000)).Return(nil)

	stored, err := svc.RecordAnswer(ctx, "task-new", models.Answer{Correct: true, Grade: 4, TimeSpentMs: 3000})
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.ID)

	// Default state was built and updated by the first answer.
	assert.Equal(t, 1, upserted.Algorithm.Repetition)
	assert.Equal(t, 1, upserted.Algorithm.IntervalDays)
	assert.Equal(t, 2.5, upserted.Algorithm.EFactor)
	assert.Equal(t, 1, upserted.Schedule.TotalReviews)
	assert.Equal(t, 0, upserted.Metadata.LapseCount)

	items.AssertExpectations(t)
}

func TestRecordAnswer_UpdatesExistingItem(t *testing.T) {
	items := new(mocks.MockItemRepository)
	svc := newReviewService(items)
	ctx := context.Background()

	existing := &models.RepetitionItem{
		ID:     3,
		TaskID: "task-a",
		Algorithm: models.AlgorithmState{
			IntervalDays: 1,
			Repetition:   1,
			EFactor:      2.5,
		},
		Schedule: models.ReviewSchedule{TotalReviews: 1, ConsecutiveCorrect: 1},
	}

	items.On("GetByTaskID", ctx, "task-a").Return(existing, nil)

	var upserted models.RepetitionItem
	items.On("Upsert", ctx, mock.MatchedBy(func(item models.RepetitionItem) bool {
		upserted = item
		return item.ID == 3
	})).Return(&models.RepetitionItem{ID: 3, TaskID: "task-a"}, nil)
	items.On("InsertReviewLog", ctx, int64(3), 5, true, int64(0)).Return(nil)

	_, err := svc.RecordAnswer(ctx, "task-a", models.Answer{Correct: true, Grade: 5})
	require.NoError(t, err)

	assert.Equal(t, 2, upserted.Algorithm.Repetition)
	assert.Equal(t, 6, upserted.Algorithm.IntervalDays)
	assert.InDelta(t, 2.6, upserted.Algorithm.EFactor, 1e-9)

	items.AssertExpectations(t)
}

func TestRecordAnswer_StorageErrorPropagatesUnchanged(t *testing.T) {
	items := new(mocks.MockItemRepository)
	svc := newReviewService(items)
	ctx := context.Background()

	storageErr := errors.New("disk I/O error")
	items.On("GetByTaskID", ctx, "task-a").Return(nil, storageErr)

	_, err := svc.RecordAnswer(ctx, "task-a", models.Answer{Correct: true, Grade: 4})
	assert.Equal(t, storageErr, err, "storage errors must cross the service boundary unchanged")

	items.AssertExpectations(t)
}

func TestRecordAnswer_ReviewLogFailureDoesNotFailReview(t *testing.T) {
	items := new(mocks.MockItemRepository)
	svc := newReviewService(items)
	ctx := context.Background()

	items.On("GetByTaskID", ctx, "task-a").Return(nil, nil)
	items.On("Upsert", ctx, mock.AnythingOfType("models.RepetitionItem")).
		Return(&models.RepetitionItem{ID: 1, TaskID: "task-a"}, nil)
	items.On("InsertReviewLog", ctx, int64(1), 4, true, int64(0)).
		Return(errors.New("log table locked"))

	stored, err := svc.RecordAnswer(ctx, "task-a", models.Answer{Correct: true, Grade: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ID)

	items.AssertExpectations(t)
}

func TestRescheduleTask_NotFoundWithoutWrite(t *testing.T) {
	items := new(mocks.MockItemRepository)
	svc := newReviewService(items)
	ctx := context.Background()

	items.On("GetByTaskID", ctx, "missing").Return(nil, nil)

	err := svc.RescheduleTask(ctx, "missing", time.Now().AddDate(0, 0, 3))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)

	items.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything)
	items.AssertExpectations(t)
}

func TestRescheduleTask_OverwritesOnlyNextReview(t *testing.T) {
	items := new(mocks.MockItemRepository)
	svc := newReviewService(items)
	ctx := context.Background()

	lastReviewed := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	existing := &models.RepetitionItem{
		ID:     9,
		TaskID: "task-a",
		Schedule: models.ReviewSchedule{
			NextReview:         time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			LastReviewed:       &lastReviewed,
			TotalReviews:       5,
			ConsecutiveCorrect: 3,
		},
	}
	newDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	items.On("GetByTaskID", ctx, "task-a").Return(existing, nil)
	items.On("UpdateSchedule", ctx, int64(9), models.ReviewSchedule{
		NextReview:         newDate,
		LastReviewed:       &lastReviewed,
		TotalReviews:       5,
		ConsecutiveCorrect: 3,
	}).Return(nil)

	err := svc.RescheduleTask(ctx, "task-a", newDate)
	require.NoError(t, err)

	items.AssertExpectations(t)
}
