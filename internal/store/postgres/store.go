package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"collabcode/backend/internal/models"
	"collabcode/backend/internal/store"
	"collabcode/backend/internal/store/postgres/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// RunMigrations applies the embedded migrations over a short-lived
// database/sql connection, since goose does not speak pgxpool.
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	now := time.Now().UTC()
	user := models.User{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Created: now,
		Updated: now,
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO authuser (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Name, user.Email, passwordHash, user.Created, user.Updated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, store.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, string, error) {
	var user models.User
	var passwordHash string
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM authuser
		WHERE lower(email) = lower($1)
	`, email)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &passwordHash, &user.Created, &user.Updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, "", store.ErrUserNotFound
		}
		return models.User{}, "", err
	}
	return user, passwordHash, nil
}

func (s *Store) CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) (models.Session, error) {
	if !isValidUUID(userID) {
		return models.Session{}, store.ErrInvalidID
	}
	now := time.Now().UTC()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		Created:   now,
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO session (id, user_id, token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, session.ID, session.UserID, session.Token, session.ExpiresAt, session.Created, now)
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *Store) ResolveSession(ctx context.Context, token string) (models.User, error) {
	var user models.User
	row := s.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.created_at, u.updated_at
		FROM session s
		JOIN authuser u ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > NOW()
	`, token)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Created, &user.Updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrSessionNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM session WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) CreateMessage(ctx context.Context, userID, content string) (models.ChatMessage, error) {
	if !isValidUUID(userID) {
		return models.ChatMessage{}, store.ErrInvalidID
	}
	now := time.Now().UTC()
	message := models.ChatMessage{
		ID:      uuid.NewString(),
		UserID:  userID,
		Content: content,
		Created: now,
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chatmessage (id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, message.ID, message.UserID, message.Content, message.Created, now)
	if err != nil {
		return models.ChatMessage{}, err
	}
	return message, nil
}

func (s *Store) RecentMessages(ctx context.Context, limit int) ([]store.MessageWithAuthor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.id, m.user_id, m.content, m.created_at, COALESCE(u.name, '')
		FROM chatmessage m
		LEFT JOIN authuser u ON u.id = m.user_id
		ORDER BY m.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []store.MessageWithAuthor
	for rows.Next() {
		var m store.MessageWithAuthor
		if err := rows.Scan(&m.Message.ID, &m.Message.UserID, &m.Message.Content, &m.Message.Created, &m.AuthorName); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func isValidUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
