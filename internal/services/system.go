package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/repo"
)

// SystemService exposes operational checks on the store.
type SystemService struct {
	DB *gorm.DB
}

// Check pings the database and returns the raw driver error on failure.
func (s *SystemService) Check(ctx context.Context) error {
	return repo.Ping(ctx, s.DB)
}

// Reset deletes all users, messages, follower edges and the latest counter.
func (s *SystemService) Reset(ctx context.Context) error {
	return repo.Reset(ctx, s.DB)
}
