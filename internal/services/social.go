package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/repo"
)

// SocialService maintains the follower graph.
type SocialService struct {
	DB *gorm.DB
}

// Follow makes actorID follow the user named target. Following twice is a
// no-op; created reports whether a new edge was stored. Returns
// ErrUserNotFound when target does not exist.
func (s *SocialService) Follow(ctx context.Context, actorID uint, target string) (created bool, err error) {
	tr := otel.Tracer("services/SocialService")
	ctx, span := tr.Start(ctx, "Follow",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(actorID)),
			attribute.String("target", target),
		),
	)
	defer span.End()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		whom, err := repo.GetUserByUsername(ctx, tx, target)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		created, err = repo.CreateFollower(ctx, tx, actorID, whom.UserID)
		return err
	})
	return created, err
}

// Unfollow removes the edge actorID -> target if present. A missing edge is
// not an error; removed reports whether one was deleted. Returns
// ErrUserNotFound when target does not exist.
func (s *SocialService) Unfollow(ctx context.Context, actorID uint, target string) (removed bool, err error) {
	tr := otel.Tracer("services/SocialService")
	ctx, span := tr.Start(ctx, "Unfollow",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(actorID)),
			attribute.String("target", target),
		),
	)
	defer span.End()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		whom, err := repo.GetUserByUsername(ctx, tx, target)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		removed, err = repo.DeleteFollower(ctx, tx, actorID, whom.UserID)
		return err
	})
	return removed, err
}

// IsFollowing reports whether actorID follows targetID.
func (s *SocialService) IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error) {
	return repo.IsFollowing(ctx, s.DB, actorID, targetID)
}

// Follows lists up to limit usernames that actorID follows.
func (s *SocialService) Follows(ctx context.Context, actorID uint, limit int) ([]string, error) {
	tr := otel.Tracer("services/SocialService")
	ctx, span := tr.Start(ctx, "Follows",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(actorID)),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	return repo.ListFollowedUsernames(ctx, s.DB, actorID, limit)
}
