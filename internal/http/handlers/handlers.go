package handlers

import (
	"context"

	"github.com/tbourn/go-minitwit/internal/domain"
	"github.com/tbourn/go-minitwit/internal/repo"
	"github.com/tbourn/go-minitwit/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService registers, authenticates and looks up users.
type AccountService interface {
	Register(ctx context.Context, r services.Registration) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TimelineService computes the three timeline views.
type TimelineService interface {
	Public(ctx context.Context, limit int) ([]repo.TimelineEntry, error)
	Own(ctx context.Context, userID uint, limit int) ([]repo.TimelineEntry, error)
	User(ctx context.Context, username string, limit int) (*domain.User, []repo.TimelineEntry, error)
}

// SocialService maintains the follower graph.
type SocialService interface {
	Follow(ctx context.Context, actorID uint, target string) (bool, error)
	Unfollow(ctx context.Context, actorID uint, target string) (bool, error)
	IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error)
	Follows(ctx context.Context, actorID uint, limit int) ([]string, error)
}

// MessageService stores new messages.
type MessageService interface {
	Post(ctx context.Context, authorID uint, text string) (*domain.Message, error)
}

// LatestService reads the simulator's latest command number.
type LatestService interface {
	Read(ctx context.Context) (int64, error)
}

// SystemService checks and resets the store.
type SystemService interface {
	Check(ctx context.Context) error
	Reset(ctx context.Context) error
}

//
// Handler wiring
//

// Services bundles the handler dependencies.
type Services struct {
	Accounts  AccountService
	Timelines TimelineService
	Social    SocialService
	Messages  MessageService
	Latest    LatestService
	System    SystemService
}

// Options are the page sizes used by the handlers.
type Options struct {
	PerPage         int // page-flow timelines
	APIDefaultLimit int // API "no" default
	APIMaxLimit     int // API "no" cap, 0 for none
}

// Handlers groups the page, API and system endpoints.
type Handlers struct {
	svc  Services
	opts Options
}

// New constructs Handlers bound to the given services.
func New(svc Services, opts Options) *Handlers {
	if opts.PerPage <= 0 {
		opts.PerPage = 30
	}
	if opts.APIDefaultLimit <= 0 {
		opts.APIDefaultLimit = 100
	}
	return &Handlers{svc: svc, opts: opts}
}
