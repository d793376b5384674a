package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/auth"
	"github.com/tbourn/go-minitwit/internal/domain"
	"github.com/tbourn/go-minitwit/internal/repo"
)

// PasswordHasher hashes and checks credentials. *auth.Hasher satisfies it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// Registration is the input of AccountService.Register. Confirm is the
// repeated password of the page form; it is nil for the simulator API,
// which sends a single password.
type Registration struct {
	Username string
	Email    string
	Password string
	Confirm  *string
}

// AccountService owns user registration, login and user lookups.
type AccountService struct {
	DB     *gorm.DB
	Hasher PasswordHasher
}

// Register validates r and creates the user inside a transaction. Input
// problems and uniqueness races both come back as *ValidationError.
func (s *AccountService) Register(ctx context.Context, r Registration) (*domain.User, error) {
	tr := otel.Tracer("services/AccountService")
	ctx, span := tr.Start(ctx, "Register",
		trace.WithAttributes(attribute.String("user.name", r.Username)),
	)
	defer span.End()

	switch {
	case r.Username == "":
		return nil, ErrUsernameRequired
	case r.Email == "" || !strings.Contains(r.Email, "@"):
		return nil, ErrEmailInvalid
	case r.Password == "":
		return nil, ErrPasswordRequired
	case r.Confirm != nil && *r.Confirm != r.Password:
		return nil, ErrPasswordMismatch
	}

	hash, err := s.Hasher.Hash(r.Password)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := repo.UserExists(ctx, tx, r.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		taken, err = repo.EmailExists(ctx, tx, r.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		u, err := repo.CreateUser(ctx, tx, r.Username, r.Email, hash)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, s.classifyDuplicate(ctx, r, err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int64("user.id", int64(user.UserID)))
	return user, nil
}

// classifyDuplicate maps a unique violation that slipped past the existence
// checks to the matching validation error. Translated driver errors do not
// name the column, so the committed rows are checked once the transaction
// has rolled back; the raw message is the fallback.
func (s *AccountService) classifyDuplicate(ctx context.Context, r Registration, err error) error {
	if taken, qerr := repo.UserExists(ctx, s.DB, r.Username); qerr == nil && taken {
		return ErrUsernameTaken
	}
	if taken, qerr := repo.EmailExists(ctx, s.DB, r.Email); qerr == nil && taken {
		return ErrEmailTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "email") {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Authenticate checks a username/password pair and returns the user.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	tr := otel.Tracer("services/AccountService")
	ctx, span := tr.Start(ctx, "Authenticate",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidUsername
		}
		return nil, err
	}
	if err := s.Hasher.Verify(u.PwHash, password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return nil, ErrInvalidPassword
		}
		return nil, err
	}
	return u, nil
}

// UserByID loads a user by id, or ErrUserNotFound.
func (s *AccountService) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	u, err := repo.GetUserByID(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UserByUsername loads a user by username, or ErrUserNotFound.
func (s *AccountService) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
