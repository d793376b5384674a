package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/domain"
)

// CreateUser inserts a new user row. Duplicate usernames or emails surface
// as the driver's unique-constraint error (gorm.ErrDuplicatedKey when the
// dialect translates it).
func CreateUser(ctx context.Context, db *gorm.DB, username, email, pwHash string) (*domain.User, error) {
	u := &domain.User{Username: username, Email: email, PwHash: pwHash}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByID fetches a user by primary key, or ErrNotFound.
func GetUserByID(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("user_id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername fetches a user by exact username, or ErrNotFound.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UserExists reports whether a username is taken.
func UserExists(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

// EmailExists reports whether an email address is already registered.
func EmailExists(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}
