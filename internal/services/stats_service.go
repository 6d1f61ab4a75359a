package services

import (
	"context"
	"time"

	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/repository"
)

// StatsService computes aggregate mastery statistics.
type StatsService interface {
	Statistics(ctx context.Context) (*models.ReviewStats, error)
}

type statsService struct {
	items repository.ItemRepository
	now   func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(items repository.ItemRepository) StatsService {
	return &statsService{items: items, now: time.Now}
}

func (s *statsService) Statistics(ctx context.Context) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing review statistics")

	items, err := s.items.ListAll(ctx)
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, err
	}

	stats := &models.ReviewStats{TotalItems: len(items)}
	if len(items) == 0 {
		return stats, nil
	}

	now := s.now()
	var intervalSum, accuracySum float64
	for _, item := range items {
		if !item.Schedule.NextReview.After(now) {
			stats.DueToday++
		}
		if item.Metadata.Graduated {
			stats.Graduated++
		}
		intervalSum += float64(item.Algorithm.IntervalDays)
		accuracySum += item.Performance.AverageAccuracy
	}
	stats.AverageInterval = intervalSum / float64(len(items))
	stats.AverageAccuracy = accuracySum / float64(len(items))

	log.Debug("statistics: total=%d, due=%d, graduated=%d", stats.TotalItems, stats.DueToday, stats.Graduated)
	return stats, nil
}
