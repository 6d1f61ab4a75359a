package services

import (
	"context"
	"time"

	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/repository"
)

// Fallback per-item estimate when an item has no timing history yet.
const defaultTaskTimeSeconds = 30

// ForecastService projects review load over the coming days.
type ForecastService interface {
	ReviewSchedule(ctx context.Context, days int) ([]models.ScheduleEntry, error)
}

type forecastService struct {
	items repository.ItemRepository
	now   func() time.Time
}

// NewForecastService creates a new ForecastService
func NewForecastService(items repository.ItemRepository) ForecastService {
	return &forecastService{items: items, now: time.Now}
}

func (s *forecastService) ReviewSchedule(ctx context.Context, days int) ([]models.ScheduleEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("building review schedule: days=%d", days)

	if days <= 0 {
		return []models.ScheduleEntry{}, nil
	}

	now := s.now()
	entries := make([]models.ScheduleEntry, 0, days)
	for d := 1; d <= days; d++ {
		day := now.AddDate(0, 0, d)

		items, err := s.items.ListByReviewDay(ctx, day)
		if err != nil {
			log.Error("failed to list items for day %s: %v", day.Format("2006-01-02"), err)
			return nil, err
		}

		var estimated int64
		for _, item := range items {
			if item.Performance.AverageTimeMs > 0 {
				estimated += item.Performance.AverageTimeMs / 1000
			} else {
				estimated += defaultTaskTimeSeconds
			}
		}

		entries = append(entries, models.ScheduleEntry{
			Date:                 endOfDay(day),
			TaskCount:            len(items),
			EstimatedTimeSeconds: estimated,
		})
	}

	return entries, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
