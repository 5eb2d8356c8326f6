package models

import "time"

// BatchStatus represents the processing state of a batch job.
type BatchStatus string

const (
	BatchStatusPending    BatchStatus = "PENDING"
	BatchStatusProcessing BatchStatus = "PROCESSING"
	BatchStatusCompleted  BatchStatus = "COMPLETED"
	BatchStatusFailed     BatchStatus = "FAILED"
)

func (s BatchStatus) String() string { return string(s) }

func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusPending, BatchStatusProcessing, BatchStatusCompleted, BatchStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether the status can no longer change.
func (s BatchStatus) Terminal() bool {
	return s == BatchStatusCompleted || s == BatchStatusFailed
}

// BatchJob tracks one bulk moderation submission. Counters only ever grow
// and the status never regresses out of a terminal state.
type BatchJob struct {
	ID             uint        `gorm:"primaryKey"`
	UserID         uint        `gorm:"not null;index"`
	Status         BatchStatus `gorm:"type:varchar(20);not null"`
	TotalItems     int         `gorm:"not null"`
	ProcessedItems int         `gorm:"not null;default:0"`
	FlaggedItems   int         `gorm:"not null;default:0"`
	CreatedAt      time.Time
	CompletedAt    *time.Time
}
