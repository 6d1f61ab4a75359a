package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/repository"
)

// ImportService loads learning-path content into the task store and
// serves task lookups. Task content stays opaque to the scheduler.
type ImportService interface {
	ImportTasks(ctx context.Context, path models.LearningPath) (int, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
}

type importService struct {
	tasks repository.TaskRepository
}

// NewImportService creates a new ImportService
func NewImportService(tasks repository.TaskRepository) ImportService {
	return &importService{tasks: tasks}
}

func (s *importService) ImportTasks(ctx context.Context, path models.LearningPath) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("importing learning path: name=%s, language=%s, tasks=%d", path.Name, path.Language, len(path.Tasks))

	if len(path.Tasks) == 0 {
		return 0, errors.NewValidationError("tasks", "learning path contains no tasks")
	}

	imported := 0
	for i, task := range path.Tasks {
		if task.Type == "" {
			return imported, errors.NewValidationError("type", "task type is required")
		}
		if len(task.Content) == 0 {
			return imported, errors.NewValidationError("content", "task content is required")
		}
		if task.ID == "" {
			task.ID = uuid.NewString()
			log.Debug("task %d has no id, generated %s", i, task.ID)
		}
		if task.PathID == "" {
			task.PathID = path.ID
		}

		if err := s.tasks.Upsert(ctx, task); err != nil {
			log.Error("failed to upsert task %s: %v", task.ID, err)
			return imported, err
		}
		imported++
	}

	log.Info("imported %d tasks", imported)
	return imported, nil
}

func (s *importService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *importService) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.tasks.List(ctx)
}
