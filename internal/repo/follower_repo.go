package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-minitwit/internal/domain"
)

// CreateFollower inserts the edge whoID -> whomID. An existing edge is left
// untouched; created reports whether a new row was written.
func CreateFollower(ctx context.Context, db *gorm.DB, whoID, whomID uint) (created bool, err error) {
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.Follower{WhoID: whoID, WhomID: whomID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteFollower removes the edge whoID -> whomID. Missing edges are not an
// error; removed reports whether a row was deleted.
func DeleteFollower(ctx context.Context, db *gorm.DB, whoID, whomID uint) (removed bool, err error) {
	res := db.WithContext(ctx).
		Where("who_id = ? AND whom_id = ?", whoID, whomID).
		Delete(&domain.Follower{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsFollowing reports whether the edge whoID -> whomID exists.
func IsFollowing(ctx context.Context, db *gorm.DB, whoID, whomID uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Follower{}).
		Where("who_id = ? AND whom_id = ?", whoID, whomID).
		Count(&n).Error
	return n > 0, err
}

// ListFollowedUsernames returns the usernames whoID follows, at most limit
// of them, sorted by username. A non-positive limit yields an empty slice.
func ListFollowedUsernames(ctx context.Context, db *gorm.DB, whoID uint, limit int) ([]string, error) {
	out := []string{}
	if limit <= 0 {
		return out, nil
	}
	err := db.WithContext(ctx).
		Table("users").
		Select("users.username").
		Joins("JOIN followers ON followers.whom_id = users.user_id").
		Where("followers.who_id = ?", whoID).
		Order("users.username ASC").
		Limit(limit).
		Pluck("users.username", &out).Error
	return out, err
}
