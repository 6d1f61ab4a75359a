package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/services"
	"github.com/repasoapp/repaso/internal/testutil/mocks"
)

func flashcardContent() json.RawMessage {
	return json.RawMessage(`{"front":"el perro","back":"the dog"}`)
}

func TestImportTasks_UpsertsEveryTask(t *testing.T) {
	tasks := new(mocks.MockTaskRepository)
	svc := services.NewImportService(tasks)
	ctx := context.Background()

	path := models.LearningPath{
		ID:       "path-1",
		Name:     "Spanish basics",
		Language: "es",
		Tasks: []models.Task{
			{ID: "t1", Type: "flashcard", Title: "el perro", Content: flashcardContent()},
			{ID: "t2", Type: "quiz", Title: "ser vs estar", Content: flashcardContent()},
		},
	}

	tasks.On("Upsert", ctx, mock.AnythingOfType("models.Task")).Return(nil).Twice()

	n, err := svc.ImportTasks(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tasks.AssertExpectations(t)
}

func TestImportTasks_GeneratesMissingIDsAndInheritsPathID(t *testing.T) {
	tasks := new(mocks.MockTaskRepository)
	svc := services.NewImportService(tasks)
	ctx := context.Background()

	var stored models.Task
	tasks.On("Upsert", ctx, mock.MatchedBy(func(task models.Task) bool {
		stored = task
		return true
	})).Return(nil)

	path := models.LearningPath{
		ID:    "path-irregulars",
		Tasks: []models.Task{{Type: "flashcard", Content: flashcardContent()}},
	}

	n, err := svc.ImportTasks(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = uuid.Parse(stored.ID)
	assert.NoError(t, err, "a task without an id gets a generated UUID")
	assert.Equal(t, "path-irregulars", stored.PathID)
}

func TestImportTasks_Validation(t *testing.T) {
	tests := []struct {
		name string
		path models.LearningPath
	}{
		{
			name: "empty path",
			path: models.LearningPath{ID: "p"},
		},
		{
			name: "missing task type",
			path: models.LearningPath{
				Tasks: []models.Task{{ID: "t1", Content: flashcardContent()}},
			},
		},
		{
			name: "missing task content",
			path: models.LearningPath{
				Tasks: []models.Task{{ID: "t1", Type: "flashcard"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := new(mocks.MockTaskRepository)
			svc := services.NewImportService(tasks)

			_, err := svc.ImportTasks(context.Background(), tt.path)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
			tasks.AssertExpectations(t)
		})
	}
}
