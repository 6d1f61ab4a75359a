package services

import (
	"context"
	"sort"
	"time"

	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/repository"
)

// QueueService builds the practice queue from due items.
type QueueService interface {
	NextTasks(ctx context.Context, limit int) ([]models.Task, error)
	TasksDue(ctx context.Context) ([]models.Task, error)
}

type queueService struct {
	items repository.ItemRepository
	tasks repository.TaskRepository
	now   func() time.Time
}

// NewQueueService creates a new QueueService
func NewQueueService(items repository.ItemRepository, tasks repository.TaskRepository) QueueService {
	return &queueService{items: items, tasks: tasks, now: time.Now}
}

func (s *queueService) NextTasks(ctx context.Context, limit int) ([]models.Task, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting next tasks: limit=%d", limit)

	if limit <= 0 {
		return []models.Task{}, nil
	}
	return s.dueTasks(ctx, limit)
}

func (s *queueService) TasksDue(ctx context.Context) ([]models.Task, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting all due tasks")

	return s.dueTasks(ctx, 0)
}

// dueTasks fetches every due item, orders them by priority and resolves
// them to tasks. limit 0 means unlimited.
func (s *queueService) dueTasks(ctx context.Context, limit int) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	items, err := s.items.ListDue(ctx, s.now())
	if err != nil {
		log.Error("failed to list due items: %v", err)
		return nil, err
	}

	sortByPriority(items)

	tasks := make([]models.Task, 0, len(items))
	for _, item := range items {
		if limit > 0 && len(tasks) >= limit {
			break
		}
		task, err := s.tasks.GetByID(ctx, item.TaskID)
		if err != nil {
			log.Error("failed to resolve task: %v", err)
			return nil, err
		}
		if task == nil {
			// Orphaned item: its task was removed. Expected data skew,
			// not an error.
			log.Debug("skipping orphaned item: task_id=%s", item.TaskID)
			continue
		}
		tasks = append(tasks, *task)
	}

	log.Debug("selected %d tasks from %d due items", len(tasks), len(items))
	return tasks, nil
}

// sortByPriority orders items by lapse count descending, then by how
// overdue they are (earlier next_review first). The sort is stable so
// equal keys keep their storage order.
func sortByPriority(items []models.RepetitionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Metadata.LapseCount != items[j].Metadata.LapseCount {
			return items[i].Metadata.LapseCount > items[j].Metadata.LapseCount
		}
		return items[i].Schedule.NextReview.Before(items[j].Schedule.NextReview)
	})
}
