package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"collabcode/backend/internal/models"
	"collabcode/backend/internal/store"
)

type sweepOnlyStore struct {
	calls atomic.Int64
}

func (s *sweepOnlyStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	return 2, nil
}

func (s *sweepOnlyStore) CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	return models.User{}, nil
}

func (s *sweepOnlyStore) UserByEmail(ctx context.Context, email string) (models.User, string, error) {
	return models.User{}, "", store.ErrUserNotFound
}

func (s *sweepOnlyStore) CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) (models.Session, error) {
	return models.Session{}, nil
}

func (s *sweepOnlyStore) ResolveSession(ctx context.Context, token string) (models.User, error) {
	return models.User{}, store.ErrSessionNotFound
}

func (s *sweepOnlyStore) CreateMessage(ctx context.Context, userID, content string) (models.ChatMessage, error) {
	return models.ChatMessage{}, nil
}

func (s *sweepOnlyStore) RecentMessages(ctx context.Context, limit int) ([]store.MessageWithAuthor, error) {
	return nil, nil
}

func TestSweeperRunsUntilCancelled(t *testing.T) {
	st := &sweepOnlyStore{}
	sweeper := NewSessionSweeper(st, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for st.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper did not run twice within deadline")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestSweeperDefaultsInterval(t *testing.T) {
	sweeper := NewSessionSweeper(&sweepOnlyStore{}, 0, nil)
	if sweeper.interval != time.Hour {
		t.Fatalf("expected 1h default interval, got %v", sweeper.interval)
	}
}
