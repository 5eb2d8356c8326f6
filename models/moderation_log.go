package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ScoreMap is a label→score mapping persisted as a JSONB column.
type ScoreMap map[string]float64

func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *ScoreMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported score map column type")
	}
	return json.Unmarshal(data, m)
}

// ModerationLog is the append-only record of one moderation attempt.
// A failed scoring attempt is stored with Error set and no probabilities.
type ModerationLog struct {
	ID            uint     `gorm:"primaryKey"`
	UserID        uint     `gorm:"not null;index"`
	BatchJobID    *uint    `gorm:"index"`
	Text          string   `gorm:"type:text;not null"`
	Probabilities ScoreMap `gorm:"type:jsonb"`
	Flagged       bool     `gorm:"not null;default:false"`
	MaxLabel      string   `gorm:"type:varchar(32)"`
	MaxScore      float64
	Error         string `gorm:"type:text"`
	CreatedAt     time.Time
}
