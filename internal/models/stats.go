package models

import "time"

// ScheduleEntry is one day of the review-load forecast.
type ScheduleEntry struct {
	Date                 time.Time `json:"date"`
	TaskCount            int       `json:"task_count"`
	EstimatedTimeSeconds int64     `json:"estimated_time_seconds"`
}

// ReviewStats summarizes the whole item collection.
type ReviewStats struct {
	TotalItems      int     `json:"total_items"`
	DueToday        int     `json:"due_today"`
	Graduated       int     `json:"graduated"`
	AverageInterval float64 `json:"average_interval"`
	AverageAccuracy float64 `json:"average_accuracy"`
}
