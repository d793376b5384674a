package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/domain"
)

// TimelineEntry is a visible message joined with its author.
type TimelineEntry struct {
	MessageID uint
	AuthorID  uint
	Text      string
	PubDate   int64
	Flagged   int
	Username  string
	Email     string
}

// CreateMessage inserts a message authored by authorID with the given
// unix-seconds publication date.
func CreateMessage(ctx context.Context, db *gorm.DB, authorID uint, text string, pubDate int64) (*domain.Message, error) {
	m := &domain.Message{AuthorID: authorID, Text: text, PubDate: pubDate}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListPublicTimeline returns up to limit visible messages from every author.
func ListPublicTimeline(ctx context.Context, db *gorm.DB, limit int) ([]TimelineEntry, error) {
	return listTimeline(ctx, db, limit, nil)
}

// ListOwnTimeline returns up to limit visible messages authored by userID or
// by anyone userID follows.
func ListOwnTimeline(ctx context.Context, db *gorm.DB, userID uint, limit int) ([]TimelineEntry, error) {
	return listTimeline(ctx, db, limit, func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"messages.author_id = ? OR messages.author_id IN (SELECT whom_id FROM followers WHERE who_id = ?)",
			userID, userID,
		)
	})
}

// ListUserTimeline returns up to limit visible messages authored by authorID.
func ListUserTimeline(ctx context.Context, db *gorm.DB, authorID uint, limit int) ([]TimelineEntry, error) {
	return listTimeline(ctx, db, limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("messages.author_id = ?", authorID)
	})
}

// listTimeline is the shared query: flagged messages are always excluded and
// rows are ordered newest first, ties broken by message id.
func listTimeline(ctx context.Context, db *gorm.DB, limit int, scope func(*gorm.DB) *gorm.DB) ([]TimelineEntry, error) {
	out := []TimelineEntry{}
	if limit <= 0 {
		return out, nil
	}
	q := db.WithContext(ctx).
		Table("messages").
		Select("messages.message_id, messages.author_id, messages.text, messages.pub_date, messages.flagged, users.username, users.email").
		Joins("JOIN users ON users.user_id = messages.author_id").
		Where("messages.flagged = ?", 0)
	if scope != nil {
		q = scope(q)
	}
	err := q.Order("messages.pub_date DESC, messages.message_id DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
