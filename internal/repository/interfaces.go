package repository

import (
	"context"
	"time"

	"github.com/repasoapp/repaso/internal/models"
)

// ItemRepository handles repetition-item data access.
//
// Lookup methods return (nil, nil) when no row matches. Upsert is the
// single write path for answer recording: it atomically creates or
// updates the row keyed on task_id, so concurrent first answers for the
// same task cannot produce duplicate items.
type ItemRepository interface {
	GetByTaskID(ctx context.Context, taskID string) (*models.RepetitionItem, error)
	Upsert(ctx context.Context, item models.RepetitionItem) (*models.RepetitionItem, error)
	UpdateSchedule(ctx context.Context, id int64, schedule models.ReviewSchedule) error
	ListDue(ctx context.Context, asOf time.Time) ([]models.RepetitionItem, error)
	ListByReviewDay(ctx context.Context, day time.Time) ([]models.RepetitionItem, error)
	ListAll(ctx context.Context) ([]models.RepetitionItem, error)
	InsertReviewLog(ctx context.Context, itemID int64, grade int, correct bool, timeSpentMs int64) error
}

// TaskRepository handles task data access.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Upsert(ctx context.Context, task models.Task) error
	List(ctx context.Context) ([]models.Task, error)
}
