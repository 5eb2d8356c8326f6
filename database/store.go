package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Archit728/Content-Moderation-SaaS/models"
	"github.com/Archit728/Content-Moderation-SaaS/services"
)

// Store is the gorm-backed implementation of services.ModerationStore.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ThresholdsForUser(ctx context.Context, userID uint) (map[string]float64, error) {
	var rows []models.Threshold
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(rows))
	for _, row := range rows {
		values[row.Label] = row.Value
	}
	return values, nil
}

func (s *Store) UpsertThreshold(ctx context.Context, userID uint, label string, value float64) error {
	row := models.Threshold{
		UserID: userID,
		Label:  label,
		Value:  value,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "label"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *Store) CreateLog(ctx context.Context, log *models.ModerationLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *Store) RecentLogs(ctx context.Context, userID uint, limit int) ([]models.ModerationLog, error) {
	var logs []models.ModerationLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (s *Store) CreateBatchJob(ctx context.Context, job *models.BatchJob) error {
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *Store) UpdateBatchJob(ctx context.Context, job *models.BatchJob) error {
	return s.db.WithContext(ctx).
		Model(&models.BatchJob{}).
		Where("id = ?", job.ID).
		Updates(map[string]interface{}{
			"status":          job.Status,
			"processed_items": job.ProcessedItems,
			"flagged_items":   job.FlaggedItems,
			"completed_at":    job.CompletedAt,
		}).Error
}

func (s *Store) GetBatchJob(ctx context.Context, userID, jobID uint) (*models.BatchJob, error) {
	var job models.BatchJob
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", jobID, userID).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: batch job %d", services.ErrNotFound, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load batch job: %v", services.ErrRepository, err)
	}
	return &job, nil
}
