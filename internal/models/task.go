package models

import (
	"encoding/json"
	"time"
)

// Task is a learning item owned by the content layer. Its content is
// opaque to the scheduler.
type Task struct {
	ID        string          `json:"id"`
	PathID    string          `json:"path_id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// LearningPath is the import payload grouping tasks for a language course.
type LearningPath struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Tasks    []Task `json:"tasks"`
}
