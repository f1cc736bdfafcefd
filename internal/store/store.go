// Package store defines the persistence boundary of the backend: the
// authuser, session, and chatmessage collections.
package store

import (
	"context"
	"time"

	"collabcode/backend/internal/models"
)

// MessageWithAuthor is a chat message joined with its author's display name.
// AuthorName is empty when the referenced user no longer exists.
type MessageWithAuthor struct {
	Message    models.ChatMessage
	AuthorName string
}

type Store interface {
	// CreateUser inserts a user and returns it with id and timestamps set.
	// Returns ErrDuplicateEmail when the email is already registered.
	CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error)

	// UserByEmail returns the user with the given email (case-insensitive)
	// and their stored password hash, or ErrUserNotFound.
	UserByEmail(ctx context.Context, email string) (models.User, string, error)

	// CreateSession persists a session for the given user.
	CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) (models.Session, error)

	// ResolveSession returns the user owning an unexpired session with the
	// given token, or ErrSessionNotFound.
	ResolveSession(ctx context.Context, token string) (models.User, error)

	// DeleteExpiredSessions removes sessions whose expiry has passed and
	// reports how many were deleted.
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// CreateMessage inserts a chat message owned by the given user.
	CreateMessage(ctx context.Context, userID, content string) (models.ChatMessage, error)

	// RecentMessages returns up to limit messages, newest first, each joined
	// with its author's name.
	RecentMessages(ctx context.Context, limit int) ([]MessageWithAuthor, error)
}
