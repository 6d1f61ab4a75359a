package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/repasoapp/repaso/internal/errors"
	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/models"
)

type answerRequest struct {
	TaskID      string `json:"task_id"`
	Correct     bool   `json:"correct"`
	Grade       int    `json:"grade"`
	TimeSpentMs int64  `json:"time_spent_ms"`
}

func (s *Server) handleRecordAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.TaskID == "" {
		handleError(w, r, errors.NewBadRequestError("task_id is required"))
		return
	}

	log = log.WithFields(map[string]any{
		"task_id": req.TaskID,
		"grade":   req.Grade,
		"correct": req.Correct,
	})
	log.Debug("recording answer")

	item, err := s.ReviewService.RecordAnswer(r.Context(), req.TaskID, models.Answer{
		Correct:     req.Correct,
		Grade:       req.Grade,
		TimeSpentMs: req.TimeSpentMs,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("answer recorded, next review %s", item.Schedule.NextReview.Format(time.RFC3339))
	writeJSON(w, r, http.StatusOK, item)
}

type rescheduleRequest struct {
	NextReview time.Time `json:"next_review"`
}

func (s *Server) handleRescheduleTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	taskID := chi.URLParam(r, "taskID")

	var req rescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.NextReview.IsZero() {
		handleError(w, r, errors.NewBadRequestError("next_review is required"))
		return
	}

	if err := s.ReviewService.RescheduleTask(r.Context(), taskID, req.NextReview); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("task rescheduled: task_id=%s", taskID)
	w.WriteHeader(http.StatusNoContent)
}
