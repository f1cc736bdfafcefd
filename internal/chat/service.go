// Package chat implements the shared message feed.
package chat

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"collabcode/backend/internal/models"
	"collabcode/backend/internal/store"
)

const (
	// ListLimit caps how many messages a single list call returns.
	ListLimit = 50

	MaxContentLength = 2000

	unknownAuthor = "Unknown"
)

var ErrInvalidContent = errors.New("content must be between 1 and 2000 characters")

// MessageView is a chat message joined with its author's display name, as
// served to clients.
type MessageView struct {
	ID       string    `json:"id"`
	UserName string    `json:"user_name"`
	Content  string    `json:"content"`
	Created  time.Time `json:"created_at"`
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Post stores a message owned by user. Content length is re-checked here;
// the feed does not trust upstream validation.
func (s *Service) Post(ctx context.Context, user models.User, content string) (MessageView, error) {
	if n := utf8.RuneCountInString(content); n == 0 || n > MaxContentLength {
		return MessageView{}, ErrInvalidContent
	}
	message, err := s.store.CreateMessage(ctx, user.ID, content)
	if err != nil {
		return MessageView{}, err
	}
	return MessageView{
		ID:       message.ID,
		UserName: user.Name,
		Content:  message.Content,
		Created:  message.Created,
	}, nil
}

// List returns the newest ListLimit messages re-ordered oldest-first for
// natural reading order. Authors whose user record is gone show as "Unknown".
func (s *Service) List(ctx context.Context) ([]MessageView, error) {
	recent, err := s.store.RecentMessages(ctx, ListLimit)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		name := m.AuthorName
		if name == "" {
			name = unknownAuthor
		}
		views = append(views, MessageView{
			ID:       m.Message.ID,
			UserName: name,
			Content:  m.Message.Content,
			Created:  m.Message.Created,
		})
	}
	return views, nil
}
