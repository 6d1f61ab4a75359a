package models

import "time"

// AlgorithmState holds the SM-2 variables driving interval growth.
type AlgorithmState struct {
	IntervalDays int     `json:"interval_days"`
	Repetition   int     `json:"repetition"`
	EFactor      float64 `json:"efactor"`
}

// ReviewSchedule tracks when an item was and will be reviewed.
type ReviewSchedule struct {
	NextReview         time.Time  `json:"next_review"`
	LastReviewed       *time.Time `json:"last_reviewed,omitempty"`
	TotalReviews       int        `json:"total_reviews"`
	ConsecutiveCorrect int        `json:"consecutive_correct"`
}

// Performance accumulates running answer statistics for an item.
type Performance struct {
	AverageAccuracy  float64 `json:"average_accuracy"`
	AverageTimeMs    int64   `json:"average_time_ms"`
	DifficultyRating int     `json:"difficulty_rating"`
	LastGrade        int     `json:"last_grade"`
}

// ItemMetadata tracks lifecycle facts about an item.
type ItemMetadata struct {
	Introduced time.Time `json:"introduced"`
	Graduated  bool      `json:"graduated"`
	LapseCount int       `json:"lapse_count"`
}

// RepetitionItem is the unit of scheduling state, one per task.
type RepetitionItem struct {
	ID          int64          `json:"id"`
	TaskID      string         `json:"task_id"`
	Algorithm   AlgorithmState `json:"algorithm"`
	Schedule    ReviewSchedule `json:"schedule"`
	Performance Performance    `json:"performance"`
	Metadata    ItemMetadata   `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Answer is the caller-supplied signal for a single review of a task.
type Answer struct {
	Correct     bool  `json:"correct"`
	Grade       int   `json:"grade"`
	TimeSpentMs int64 `json:"time_spent_ms"`
}
