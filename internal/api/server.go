package api

import (
	"github.com/repasoapp/repaso/internal/db"
	"github.com/repasoapp/repaso/internal/services"
)

// Server holds the service dependencies for the HTTP layer.
type Server struct {
	DB              *db.DB
	ReviewService   services.ReviewService
	QueueService    services.QueueService
	ForecastService services.ForecastService
	StatsService    services.StatsService
	ImportService   services.ImportService

	// Defaults for query parameters left unset by the client.
	PracticeLimit int
	ForecastDays  int
}
