package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/domain"
	"github.com/tbourn/go-minitwit/internal/repo"
)

// TimelineService answers the three timeline views. All of them exclude
// flagged messages and return newest first.
type TimelineService struct {
	DB *gorm.DB
}

// Public returns up to limit messages from every author.
func (s *TimelineService) Public(ctx context.Context, limit int) ([]repo.TimelineEntry, error) {
	tr := otel.Tracer("services/TimelineService")
	ctx, span := tr.Start(ctx, "Public", trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	return repo.ListPublicTimeline(ctx, s.DB, limit)
}

// Own returns up to limit messages written by userID or by anyone userID
// follows.
func (s *TimelineService) Own(ctx context.Context, userID uint, limit int) ([]repo.TimelineEntry, error) {
	tr := otel.Tracer("services/TimelineService")
	ctx, span := tr.Start(ctx, "Own",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(userID)),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	return repo.ListOwnTimeline(ctx, s.DB, userID, limit)
}

// User returns the named user and up to limit of their messages, or
// ErrUserNotFound.
func (s *TimelineService) User(ctx context.Context, username string, limit int) (*domain.User, []repo.TimelineEntry, error) {
	tr := otel.Tracer("services/TimelineService")
	ctx, span := tr.Start(ctx, "User",
		trace.WithAttributes(
			attribute.String("user.name", username),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	entries, err := repo.ListUserTimeline(ctx, s.DB, u.UserID, limit)
	if err != nil {
		return nil, nil, err
	}
	return u, entries, nil
}
