package repositories

import (
	"errors"
	"fmt"
	"time"

	"finsight/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// modelStateRepository implements ModelStoreInterface on top of the
// sqlite-backed gorm store
type modelStateRepository struct {
	db *gorm.DB
}

// NewModelStateRepository creates a new model state repository
func NewModelStateRepository(db *gorm.DB) ModelStoreInterface {
	return &modelStateRepository{db: db}
}

// Load retrieves the trained-state blob for a model key
func (r *modelStateRepository) Load(key string) ([]byte, error) {
	var state models.ModelState
	if err := r.db.First(&state, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to load model state %q: %w", key, err)
	}
	return state.Blob, nil
}

// Save upserts the trained-state blob for a model key, bumping the version
// on replacement
func (r *modelStateRepository) Save(key string, blob []byte) error {
	state := models.ModelState{Key: key, Blob: blob}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"blob":       blob,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("failed to save model state %q: %w", key, err)
	}
	return nil
}

// Delete removes the trained state for a model key; deleting a missing
// key is not an error
func (r *modelStateRepository) Delete(key string) error {
	if err := r.db.Delete(&models.ModelState{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete model state %q: %w", key, err)
	}
	return nil
}
