package models

import "time"

// Threshold stores one user's override for a single category label.
// Unconfigured labels fall back to the system defaults at resolve time.
type Threshold struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_label"`
	Label     string  `gorm:"type:varchar(32);not null;uniqueIndex:idx_user_label"`
	Value     float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
