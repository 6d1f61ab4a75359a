package srs

import (
	"math"
	"time"

	"github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/models"
)

// Grades below this value count as a failed recall.
const passingGrade = 3

// Smoothing factor for the answer-time moving average.
const timeAlpha = 0.3

// Config holds the tunable constants of the update rule.
type Config struct {
	GraduationThreshold int
	MaxIntervalDays     int
	MinEFactor          float64
	InitialEFactor      float64
}

// DefaultConfig returns the stock SM-2 constants.
func DefaultConfig() Config {
	return Config{
		GraduationThreshold: 2,
		MaxIntervalDays:     365,
		MinEFactor:          1.3,
		InitialEFactor:      2.5,
	}
}

// Rule applies grade-driven retention updates to repetition items.
// It is pure: no I/O, deterministic given its inputs.
type Rule struct {
	cfg Config
}

// New creates a Rule with the given configuration.
func New(cfg Config) *Rule {
	return &Rule{cfg: cfg}
}

// NewItem returns the default scheduling state for a task seen for the
// first time: one-day interval, no repetitions, initial ease factor.
func (r *Rule) NewItem(taskID string, now time.Time) models.RepetitionItem {
	return models.RepetitionItem{
		TaskID: taskID,
		Algorithm: models.AlgorithmState{
			IntervalDays: 1,
			Repetition:   0,
			EFactor:      r.cfg.InitialEFactor,
		},
		Schedule: models.ReviewSchedule{
			NextReview: now.AddDate(0, 0, 1),
		},
		Performance: models.Performance{
			DifficultyRating: 3,
		},
		Metadata: models.ItemMetadata{
			Introduced: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply records one answer against an item and returns the next state.
// A grade outside [0,5] is rejected with INVALID_GRADE and the input is
// returned unchanged.
func (r *Rule) Apply(item models.RepetitionItem, ans models.Answer, now time.Time) (models.RepetitionItem, error) {
	if ans.Grade < 0 || ans.Grade > 5 {
		return item, errors.NewInvalidGradeError(ans.Grade)
	}

	if ans.Grade >= passingGrade {
		item.Algorithm.Repetition++
		switch item.Algorithm.Repetition {
		case 1:
			item.Algorithm.IntervalDays = 1
		case 2:
			item.Algorithm.IntervalDays = 6
		default:
			// The interval grows from the pre-update ease factor.
			item.Algorithm.IntervalDays = int(math.Round(float64(item.Algorithm.IntervalDays) * item.Algorithm.EFactor))
		}
		item.Algorithm.IntervalDays = clampInterval(item.Algorithm.IntervalDays, r.cfg.MaxIntervalDays)

		q := float64(5 - ans.Grade)
		ef := item.Algorithm.EFactor + (0.1 - q*(0.08+q*0.02))
		if ef < r.cfg.MinEFactor {
			ef = r.cfg.MinEFactor
		}
		item.Algorithm.EFactor = ef

		if item.Algorithm.Repetition >= r.cfg.GraduationThreshold {
			item.Metadata.Graduated = true
		}
	} else {
		item.Algorithm.Repetition = 0
		item.Algorithm.IntervalDays = 1
		item.Metadata.LapseCount++
		item.Metadata.Graduated = false
	}

	item.Schedule.TotalReviews++
	if ans.Correct {
		item.Schedule.ConsecutiveCorrect++
	} else {
		item.Schedule.ConsecutiveCorrect = 0
	}
	reviewed := now
	item.Schedule.LastReviewed = &reviewed
	item.Schedule.NextReview = now.AddDate(0, 0, item.Algorithm.IntervalDays)

	item.Performance.LastGrade = ans.Grade

	// Accuracy is a cumulative mean over all reviews, with each answer
	// contributing 100 (correct) or 0 (incorrect).
	sample := 0.0
	if ans.Correct {
		sample = 100
	}
	item.Performance.AverageAccuracy += (sample - item.Performance.AverageAccuracy) / float64(item.Schedule.TotalReviews)

	// Answer time is an exponential moving average over positive samples.
	// A zero sample is ignored so an untimed answer never skews the
	// estimate used by the forecaster.
	if ans.TimeSpentMs > 0 {
		if item.Performance.AverageTimeMs == 0 {
			item.Performance.AverageTimeMs = ans.TimeSpentMs
		} else {
			item.Performance.AverageTimeMs = int64(timeAlpha*float64(ans.TimeSpentMs) + (1-timeAlpha)*float64(item.Performance.AverageTimeMs))
		}
	}

	item.UpdatedAt = now
	return item, nil
}

func clampInterval(days, max int) int {
	if days < 1 {
		return 1
	}
	if days > max {
		return max
	}
	return days
}
