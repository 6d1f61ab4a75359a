package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/repository"
)

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository implementation
func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("getting task: id=%s", id)

	var t models.Task
	var content []byte
	err := r.db.QueryRowContext(ctx, `
SELECT id, path_id, type, title, content, created_at
FROM tasks
WHERE id = ?
`, id).Scan(&t.ID, &t.PathID, &t.Type, &t.Title, &content, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("task not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get task: %v", err)
		return nil, err
	}
	t.Content = content
	return &t, nil
}

func (r *taskRepository) Upsert(ctx context.Context, task models.Task) error {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("upserting task: id=%s, type=%s", task.ID, task.Type)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (id, path_id, type, title, content)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    path_id = excluded.path_id,
    type = excluded.type,
    title = excluded.title,
    content = excluded.content
`, task.ID, task.PathID, task.Type, task.Title, []byte(task.Content))
	if err != nil {
		log.Error("failed to upsert task: %v", err)
	}
	return err
}

func (r *taskRepository) List(ctx context.Context) ([]models.Task, error) {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("listing tasks")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, path_id, type, title, content, created_at
FROM tasks
ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list tasks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var content []byte
		if err := rows.Scan(&t.ID, &t.PathID, &t.Type, &t.Title, &content, &t.CreatedAt); err != nil {
			log.Error("failed to scan task row: %v", err)
			return nil, err
		}
		t.Content = content
		tasks = append(tasks, t)
	}
	log.Debug("found %d tasks", len(tasks))
	return tasks, rows.Err()
}
