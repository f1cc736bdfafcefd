package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"collabcode/backend/internal/models"
	"collabcode/backend/internal/store"
)

type fakeStore struct {
	createMessageFn  func(ctx context.Context, userID, content string) (models.ChatMessage, error)
	recentMessagesFn func(ctx context.Context, limit int) ([]store.MessageWithAuthor, error)
}

func (f *fakeStore) CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeStore) UserByEmail(ctx context.Context, email string) (models.User, string, error) {
	return models.User{}, "", store.ErrUserNotFound
}

func (f *fakeStore) CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) (models.Session, error) {
	return models.Session{}, nil
}

func (f *fakeStore) ResolveSession(ctx context.Context, token string) (models.User, error) {
	return models.User{}, store.ErrSessionNotFound
}

func (f *fakeStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeStore) CreateMessage(ctx context.Context, userID, content string) (models.ChatMessage, error) {
	if f.createMessageFn == nil {
		return models.ChatMessage{ID: "msg-1", UserID: userID, Content: content, Created: time.Now().UTC()}, nil
	}
	return f.createMessageFn(ctx, userID, content)
}

func (f *fakeStore) RecentMessages(ctx context.Context, limit int) ([]store.MessageWithAuthor, error) {
	if f.recentMessagesFn == nil {
		return nil, nil
	}
	return f.recentMessagesFn(ctx, limit)
}

func TestPostReturnsAuthorView(t *testing.T) {
	svc := NewService(&fakeStore{})
	user := models.User{ID: "user-1", Name: "Alice"}

	view, err := svc.Post(context.Background(), user, "hi")
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if view.UserName != "Alice" || view.Content != "hi" || view.ID == "" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestPostRejectsBadContent(t *testing.T) {
	svc := NewService(&fakeStore{
		createMessageFn: func(ctx context.Context, userID, content string) (models.ChatMessage, error) {
			t.Fatal("store must not be reached for invalid content")
			return models.ChatMessage{}, nil
		},
	})
	user := models.User{ID: "user-1", Name: "Alice"}

	for _, content := range []string{"", strings.Repeat("x", MaxContentLength+1)} {
		_, err := svc.Post(context.Background(), user, content)
		if !errors.Is(err, ErrInvalidContent) {
			t.Fatalf("content length %d: expected ErrInvalidContent, got %v", len(content), err)
		}
	}
}

func TestPostCountsRunesNotBytes(t *testing.T) {
	// 2000 multi-byte runes are within the limit even though the byte count
	// is far above it.
	content := strings.Repeat("é", MaxContentLength)
	svc := NewService(&fakeStore{})
	user := models.User{ID: "user-1", Name: "Alice"}

	if _, err := svc.Post(context.Background(), user, content); err != nil {
		t.Fatalf("post: %v", err)
	}
}

func TestListReversesToReadingOrder(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(&fakeStore{
		recentMessagesFn: func(ctx context.Context, limit int) ([]store.MessageWithAuthor, error) {
			if limit != ListLimit {
				t.Fatalf("expected limit %d, got %d", ListLimit, limit)
			}
			// Newest first, as the store returns them.
			return []store.MessageWithAuthor{
				{Message: models.ChatMessage{ID: "m3", Content: "third", Created: base.Add(2 * time.Minute)}, AuthorName: "Carol"},
				{Message: models.ChatMessage{ID: "m2", Content: "second", Created: base.Add(time.Minute)}, AuthorName: ""},
				{Message: models.ChatMessage{ID: "m1", Content: "first", Created: base}, AuthorName: "Alice"},
			}, nil
		},
	})

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	if views[0].ID != "m1" || views[2].ID != "m3" {
		t.Fatalf("expected oldest-first order, got %q, %q, %q", views[0].ID, views[1].ID, views[2].ID)
	}
	if views[1].UserName != "Unknown" {
		t.Fatalf("expected missing author to render as Unknown, got %q", views[1].UserName)
	}
	if views[2].UserName != "Carol" {
		t.Fatalf("unexpected author: %q", views[2].UserName)
	}
}

func TestListEmptyFeed(t *testing.T) {
	svc := NewService(&fakeStore{})

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty feed, got %d views", len(views))
	}
}
