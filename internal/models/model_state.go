package models

import (
	"time"

	"gorm.io/gorm"
)

// Model store keys
const (
	ModelKeyExpenseClassifier = "expense_classifier"
	ModelKeyAnomalyDetector   = "anomaly_detector"
)

// ModelState is a persisted trained-model blob. Each engine owns at most
// one row, keyed by model name; the blob is the engine's own JSON encoding
// of its fitted parameters.
type ModelState struct {
	Key       string    `gorm:"type:varchar(100);primary_key" json:"key"`
	Blob      []byte    `gorm:"type:blob;not null" json:"-"`
	Version   int       `gorm:"default:1" json:"version"`
	TrainedAt time.Time `gorm:"not null" json:"trained_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeSave hook stamps timestamps
func (m *ModelState) BeforeSave(tx *gorm.DB) error {
	now := time.Now().UTC()
	if m.TrainedAt.IsZero() {
		m.TrainedAt = now
	}
	m.UpdatedAt = now
	return nil
}
