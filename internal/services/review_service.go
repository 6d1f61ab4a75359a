package services

import (
	"context"
	"time"

	"github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/repository"
	"github.com/repasoapp/repaso/internal/srs"
)

// ReviewService records answers against repetition items and reschedules
// them. Storage errors are returned unchanged so callers see the original
// failure.
type ReviewService interface {
	RecordAnswer(ctx context.Context, taskID string, ans models.Answer) (*models.RepetitionItem, error)
	RescheduleTask(ctx context.Context, taskID string, nextReview time.Time) error
}

type reviewService struct {
	items repository.ItemRepository
	rule  *srs.Rule
	now   func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(items repository.ItemRepository, rule *srs.Rule) ReviewService {
	return &reviewService{items: items, rule: rule, now: time.Now}
}

func (s *reviewService) RecordAnswer(ctx context.Context, taskID string, ans models.Answer) (*models.RepetitionItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording answer: task_id=%s, grade=%d, correct=%t", taskID, ans.Grade, ans.Correct)

	// Reject invalid grades before touching storage.
	if ans.Grade < 0 || ans.Grade > 5 {
		return nil, errors.NewInvalidGradeError(ans.Grade)
	}

	now := s.now()

	item, err := s.items.GetByTaskID(ctx, taskID)
	if err != nil {
		log.Error("failed to load item: %v", err)
		return nil, err
	}

	var current models.RepetitionItem
	if item == nil {
		log.Debug("first answer for task, creating item: task_id=%s", taskID)
		current = s.rule.NewItem(taskID, now)
	} else {
		current = *item
	}

	updated, err := s.rule.Apply(current, ans, now)
	if err != nil {
		return nil, err
	}

	log.Debug("applied answer, new interval=%d days, efactor=%.2f, repetition=%d",
		updated.Algorithm.IntervalDays, updated.Algorithm.EFactor, updated.Algorithm.Repetition)

	stored, err := s.items.Upsert(ctx, updated)
	if err != nil {
		log.Error("failed to persist item: %v", err)
		return nil, err
	}

	// History is best effort; a failed log write never fails the review.
	if err := s.items.InsertReviewLog(ctx, stored.ID, ans.Grade, ans.Correct, ans.TimeSpentMs); err != nil {
		log.Warn("failed to store review log: %v", err)
	}

	return stored, nil
}

func (s *reviewService) RescheduleTask(ctx context.Context, taskID string, nextReview time.Time) error {
	log := logger.FromContext(ctx)
	log.Debug("rescheduling task: task_id=%s, next_review=%s", taskID, nextReview.Format(time.RFC3339))

	item, err := s.items.GetByTaskID(ctx, taskID)
	if err != nil {
		log.Error("failed to load item: %v", err)
		return err
	}
	if item == nil {
		return errors.NewNotFoundError("task", taskID)
	}

	schedule := item.Schedule
	schedule.NextReview = nextReview

	if err := s.items.UpdateSchedule(ctx, item.ID, schedule); err != nil {
		log.Error("failed to update schedule: %v", err)
		return err
	}
	return nil
}
