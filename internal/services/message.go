package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/domain"
	"github.com/tbourn/go-minitwit/internal/repo"
)

// MessageService appends messages on behalf of an author.
type MessageService struct {
	DB *gorm.DB

	// Now stamps pub_date; defaults to time.Now.
	Now func() time.Time
}

// Post stores text as a new message by authorID, stamped with the current
// server time. Text is NFC-normalized; blank text yields ErrEmptyMessage and
// an unknown author yields ErrUserNotFound.
func (s *MessageService) Post(ctx context.Context, authorID uint, text string) (*domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Post",
		trace.WithAttributes(attribute.Int64("user.id", int64(authorID))),
	)
	defer span.End()

	text = norm.NFC.String(text)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	var msg *domain.Message
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetUserByID(ctx, tx, authorID); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		m, err := repo.CreateMessage(ctx, tx, authorID, text, now().Unix())
		if err != nil {
			return err
		}
		msg = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("message.id", int64(msg.MessageID)))
	return msg, nil
}
