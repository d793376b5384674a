// Package services defines the business logic of MiniTwit: registration and
// login, the simulator's latest-command counter, the follower graph, timeline
// queries and message ingestion. This file centralizes the error values the
// service methods return so handlers can translate them into status codes.
//
// Two families exist:
//   - Sentinels such as ErrUserNotFound, compared with errors.Is.
//   - *ValidationError values carrying the user-facing message. Every one of
//     them matches ErrValidation under errors.Is.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/repo"
)

// ErrValidation classifies every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError is a rejected input; Msg is shown to the caller verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Registration errors, in the order they are checked.
var (
	ErrUsernameRequired = &ValidationError{Msg: "You have to enter a username"}
	ErrEmailInvalid     = &ValidationError{Msg: "You have to enter a valid email address"}
	ErrPasswordRequired = &ValidationError{Msg: "You have to enter a password"}
	ErrPasswordMismatch = &ValidationError{Msg: "The two passwords do not match"}
	ErrUsernameTaken    = &ValidationError{Msg: "The username is already taken"}
	ErrEmailTaken       = &ValidationError{Msg: "The email is already registered"}
)

// ErrEmptyMessage is returned when a message has no text.
var ErrEmptyMessage = &ValidationError{Msg: "Message text must not be empty"}

// Lookup and login errors.
var (
	// ErrUserNotFound indicates that a referenced username or id does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUsername is returned by Authenticate for unknown usernames.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidPassword is returned by Authenticate when the credential
	// does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

// isNotFound treats repo-level not found sentinels as "not found".
func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound)
}

// isDuplicate detects unique-constraint violations across drivers, including
// those that are not translated to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite: "UNIQUE constraint failed"
	// Postgres: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
