package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/repasoapp/repaso/internal/models"
	"github.com/repasoapp/repaso/internal/repository"
	"github.com/repasoapp/repaso/internal/repository/sqlite"
	"github.com/repasoapp/repaso/internal/testutil"
)

type ItemRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ItemRepository
}

func (s *ItemRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewItemRepository(s.db)
}

func (s *ItemRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ItemRepositorySuite) newItem(taskID string, nextReview time.Time) models.RepetitionItem {
	now := time.Now().UTC().Truncate(time.Second)
	return models.RepetitionItem{
		TaskID: taskID,
		Algorithm: models.AlgorithmState{
			IntervalDays: 1,
			Repetition:   0,
			EFactor:      2.5,
		},
		Schedule: models.ReviewSchedule{
			NextReview: nextReview,
		},
		Performance: models.Performance{
			DifficultyRating: 3,
		},
		Metadata: models.ItemMetadata{
			Introduced: now,
		},
		UpdatedAt: now,
	}
}

func (s *ItemRepositorySuite) TestGetByTaskID_AbsentReturnsNilNil() {
	item, err := s.repo.GetByTaskID(context.Background(), "no-such-task")
	s.Require().NoError(err)
	s.Assert().Nil(item)
}

func (s *ItemRepositorySuite) TestUpsert_CreateThenUpdate() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	created, err := s.repo.Upsert(ctx, s.newItem("task-1", now.AddDate(0, 0, 1)))
	s.Require().NoError(err)
	s.Assert().Greater(created.ID, int64(0))
	s.Assert().Equal("task-1", created.TaskID)
	s.Assert().Equal(1, created.Algorithm.IntervalDays)
	s.Assert().Nil(created.Schedule.LastReviewed)

	// Same task_id updates the existing row in place.
	updated := *created
	updated.Algorithm.IntervalDays = 6
	updated.Algorithm.Repetition = 2
	updated.Algorithm.EFactor = 2.6
	updated.Schedule.TotalReviews = 2
	reviewed := now
	updated.Schedule.LastReviewed = &reviewed
	updated.Schedule.NextReview = now.AddDate(0, 0, 6)
	updated.Metadata.Graduated = true

	stored, err := s.repo.Upsert(ctx, updated)
	s.Require().NoError(err)
	s.Assert().Equal(created.ID, stored.ID, "upsert on an existing task_id keeps the row identity")
	s.Assert().Equal(6, stored.Algorithm.IntervalDays)
	s.Assert().Equal(2, stored.Algorithm.Repetition)
	s.Assert().InDelta(2.6, stored.Algorithm.EFactor, 1e-9)
	s.Assert().True(stored.Metadata.Graduated)
	s.Require().NotNil(stored.Schedule.LastReviewed)
	s.Assert().True(stored.Schedule.LastReviewed.Equal(reviewed))

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM repetition_items`).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(1, count, "no duplicate row was created")
}

func (s *ItemRepositorySuite) TestListDue_FiltersByCutoff() {
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.repo.Upsert(ctx, s.newItem("overdue", now.Add(-time.Hour)))
	s.Require().NoError(err)
	_, err = s.repo.Upsert(ctx, s.newItem("due-now", now.Add(-time.Minute)))
	s.Require().NoError(err)
	_, err = s.repo.Upsert(ctx, s.newItem("future", now.AddDate(0, 0, 2)))
	s.Require().NoError(err)

	due, err := s.repo.ListDue(ctx, now)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Assert().Equal("overdue", due[0].TaskID, "due listing is ordered oldest first")
	s.Assert().Equal("due-now", due[1].TaskID)
}

func (s *ItemRepositorySuite) TestListByReviewDay_WindowBounds() {
	ctx := context.Background()
	day := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	_, err := s.repo.Upsert(ctx, s.newItem("start-of-day", day))
	s.Require().NoError(err)
	_, err = s.repo.Upsert(ctx, s.newItem("mid-day", day.Add(13*time.Hour)))
	s.Require().NoError(err)
	_, err = s.repo.Upsert(ctx, s.newItem("day-before", day.Add(-time.Second)))
	s.Require().NoError(err)
	_, err = s.repo.Upsert(ctx, s.newItem("day-after", day.AddDate(0, 0, 1)))
	s.Require().NoError(err)

	items, err := s.repo.ListByReviewDay(ctx, day.Add(10*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Assert().Equal("start-of-day", items[0].TaskID)
	s.Assert().Equal("mid-day", items[1].TaskID)
}

func (s *ItemRepositorySuite) TestUpdateSchedule_OverwritesNextReviewOnly() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	item := s.newItem("task-1", now.AddDate(0, 0, 1))
	reviewed := now.Add(-time.Hour)
	item.Schedule.LastReviewed = &reviewed
	item.Schedule.TotalReviews = 3
	item.Schedule.ConsecutiveCorrect = 2

	created, err := s.repo.Upsert(ctx, item)
	s.Require().NoError(err)

	schedule := created.Schedule
	schedule.NextReview = now.AddDate(0, 0, 14)
	s.Require().NoError(s.repo.UpdateSchedule(ctx, created.ID, schedule))

	after, err := s.repo.GetByTaskID(ctx, "task-1")
	s.Require().NoError(err)
	s.Require().NotNil(after)
	s.Assert().True(after.Schedule.NextReview.Equal(now.AddDate(0, 0, 14)))
	s.Assert().Equal(3, after.Schedule.TotalReviews)
	s.Assert().Equal(2, after.Schedule.ConsecutiveCorrect)
	s.Require().NotNil(after.Schedule.LastReviewed)
	s.Assert().True(after.Schedule.LastReviewed.Equal(reviewed))
}

func (s *ItemRepositorySuite) TestListAll_Empty() {
	items, err := s.repo.ListAll(context.Background())
	s.Require().NoError(err)
	s.Assert().Empty(items)
}

func (s *ItemRepositorySuite) TestInsertReviewLog() {
	ctx := context.Background()
	created, err := s.repo.Upsert(ctx, s.newItem("task-1", time.Now().UTC()))
	s.Require().NoError(err)

	s.Require().NoError(s.repo.InsertReviewLog(ctx, created.ID, 4, true, 4200))
	s.Require().NoError(s.repo.InsertReviewLog(ctx, created.ID, 1, false, 9000))

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_log WHERE item_id = ?`, created.ID).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func TestItemRepositorySuite(t *testing.T) {
	suite.Run(t, new(ItemRepositorySuite))
}
