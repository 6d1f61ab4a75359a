package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var itemColumns = []string{
	"id", "task_id", "interval_days", "repetition", "efactor",
	"next_review", "last_reviewed", "total_reviews", "consecutive_correct",
	"average_accuracy", "average_time_ms", "difficulty_rating", "last_grade",
	"introduced", "graduated", "lapse_count", "created_at", "updated_at",
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository implementation
func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.RepetitionItem, error) {
	var it models.RepetitionItem
	var lastReviewed sql.NullTime
	err := row.Scan(
		&it.ID, &it.TaskID, &it.Algorithm.IntervalDays, &it.Algorithm.Repetition, &it.Algorithm.EFactor,
		&it.Schedule.NextReview, &lastReviewed, &it.Schedule.TotalReviews, &it.Schedule.ConsecutiveCorrect,
		&it.Performance.AverageAccuracy, &it.Performance.AverageTimeMs, &it.Performance.DifficultyRating, &it.Performance.LastGrade,
		&it.Metadata.Introduced, &it.Metadata.Graduated, &it.Metadata.LapseCount, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return it, err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		it.Schedule.LastReviewed = &t
	}
	return it, nil
}

func (r *itemRepository) GetByTaskID(ctx context.Context, taskID string) (*models.RepetitionItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("getting item: task_id=%s", taskID)

	query, args, err := sqlBuilder.Select(itemColumns...).
		From("repetition_items").
		Where(squirrel.Eq{"task_id": taskID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	it, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("item not found: task_id=%s", taskID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, err
	}
	return &it, nil
}

func (r *itemRepository) Upsert(ctx context.Context, item models.RepetitionItem) (*models.RepetitionItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("upserting item: task_id=%s, interval=%d, efactor=%.2f", item.TaskID, item.Algorithm.IntervalDays, item.Algorithm.EFactor)

	row := r.db.QueryRowContext(ctx, `
INSERT INTO repetition_items (
    task_id, interval_days, repetition, efactor,
    next_review, last_reviewed, total_reviews, consecutive_correct,
    average_accuracy, average_time_ms, difficulty_rating, last_grade,
    introduced, graduated, lapse_count, updated_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(task_id) DO UPDATE SET
    interval_days = excluded.interval_days,
    repetition = excluded.repetition,
    efactor = excluded.efactor,
    next_review = excluded.next_review,
    last_reviewed = excluded.last_reviewed,
    total_reviews = excluded.total_reviews,
    consecutive_correct = excluded.consecutive_correct,
    average_accuracy = excluded.average_accuracy,
    average_time_ms = excluded.average_time_ms,
    difficulty_rating = excluded.difficulty_rating,
    last_grade = excluded.last_grade,
    graduated = excluded.graduated,
    lapse_count = excluded.lapse_count,
    updated_at = excluded.updated_at
RETURNING id, task_id, interval_days, repetition, efactor,
    next_review, last_reviewed, total_reviews, consecutive_correct,
    average_accuracy, average_time_ms, difficulty_rating, last_grade,
    introduced, graduated, lapse_count, created_at, updated_at
`,
		item.TaskID, item.Algorithm.IntervalDays, item.Algorithm.Repetition, item.Algorithm.EFactor,
		item.Schedule.NextReview, nullableTime(item.Schedule.LastReviewed), item.Schedule.TotalReviews, item.Schedule.ConsecutiveCorrect,
		item.Performance.AverageAccuracy, item.Performance.AverageTimeMs, item.Performance.DifficultyRating, item.Performance.LastGrade,
		item.Metadata.Introduced, item.Metadata.Graduated, item.Metadata.LapseCount, item.UpdatedAt,
	)

	stored, err := scanItem(row)
	if err != nil {
		log.Error("failed to upsert item: %v", err)
		return nil, err
	}
	log.Debug("item upserted: id=%d", stored.ID)
	return &stored, nil
}

func (r *itemRepository) UpdateSchedule(ctx context.Context, id int64, schedule models.ReviewSchedule) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("updating schedule: id=%d, next_review=%s", id, schedule.NextReview.Format(time.RFC3339))

	_, err := r.db.ExecContext(ctx, `
UPDATE repetition_items
SET next_review = ?, last_reviewed = ?, total_reviews = ?, consecutive_correct = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, schedule.NextReview, nullableTime(schedule.LastReviewed), schedule.TotalReviews, schedule.ConsecutiveCorrect, id)
	if err != nil {
		log.Error("failed to update schedule: %v", err)
	}
	return err
}

func (r *itemRepository) ListDue(ctx context.Context, asOf time.Time) ([]models.RepetitionItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("listing due items: as_of=%s", asOf.Format(time.RFC3339))

	query := sqlBuilder.Select(itemColumns...).
		From("repetition_items").
		Where(squirrel.LtOrEq{"next_review": asOf}).
		OrderBy("next_review ASC")

	return r.queryItems(ctx, query)
}

func (r *itemRepository) ListByReviewDay(ctx context.Context, day time.Time) ([]models.RepetitionItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("listing items by review day: day=%s", day.Format("2006-01-02"))

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	query := sqlBuilder.Select(itemColumns...).
		From("repetition_items").
		Where(squirrel.GtOrEq{"next_review": start}).
		Where(squirrel.Lt{"next_review": end}).
		OrderBy("next_review ASC")

	return r.queryItems(ctx, query)
}

func (r *itemRepository) ListAll(ctx context.Context) ([]models.RepetitionItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("listing all items")

	query := sqlBuilder.Select(itemColumns...).
		From("repetition_items").
		OrderBy("id ASC")

	return r.queryItems(ctx, query)
}

func (r *itemRepository) queryItems(ctx context.Context, query squirrel.SelectBuilder) ([]models.RepetitionItem, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.RepetitionItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan item row: %v", err)
			return nil, err
		}
		items = append(items, it)
	}
	log.Debug("found %d items", len(items))
	return items, rows.Err()
}

func (r *itemRepository) InsertReviewLog(ctx context.Context, itemID int64, grade int, correct bool, timeSpentMs int64) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("inserting review log: item_id=%d, grade=%d, time=%dms", itemID, grade, timeSpentMs)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_log (item_id, grade, correct, time_spent_ms)
VALUES (?, ?, ?, ?)
`, itemID, grade, correct, timeSpentMs)
	if err != nil {
		log.Error("failed to insert review log: %v", err)
	}
	return err
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
