package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-minitwit/internal/domain"
)

// UpsertLatest stores value as the latest processed command, creating the
// single counter row on first use. The last writer wins.
func UpsertLatest(ctx context.Context, db *gorm.DB, value int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&domain.Latest{ID: domain.LatestID, Value: value}).Error
	})
}

// GetLatest returns the stored counter, or ErrNotFound if nothing has been
// recorded yet.
func GetLatest(ctx context.Context, db *gorm.DB) (int64, error) {
	var l domain.Latest
	if err := db.WithContext(ctx).Where("id = ?", domain.LatestID).First(&l).Error; err != nil {
		return 0, err
	}
	return l.Value, nil
}
