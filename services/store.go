package services

import (
	"context"

	"github.com/Archit728/Content-Moderation-SaaS/models"
)

// ModerationStore is the persistence boundary consumed by the services.
// database.Store implements it over gorm; tests swap in fakes.
type ModerationStore interface {
	ThresholdsForUser(ctx context.Context, userID uint) (map[string]float64, error)
	UpsertThreshold(ctx context.Context, userID uint, label string, value float64) error

	CreateLog(ctx context.Context, log *models.ModerationLog) error
	RecentLogs(ctx context.Context, userID uint, limit int) ([]models.ModerationLog, error)

	CreateBatchJob(ctx context.Context, job *models.BatchJob) error
	UpdateBatchJob(ctx context.Context, job *models.BatchJob) error
	GetBatchJob(ctx context.Context, userID, jobID uint) (*models.BatchJob, error)
}
