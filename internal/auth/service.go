// Package auth implements registration, login, and bearer-token
// authentication on top of the store.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"collabcode/backend/internal/models"
	"collabcode/backend/internal/store"
)

const (
	// DefaultSessionTTL is how long a session stays valid unless configured
	// otherwise.
	DefaultSessionTTL = 7 * 24 * time.Hour

	sessionTokenBytes = 32
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingAuth        = errors.New("missing authorization header")
	ErrMalformedAuth      = errors.New("malformed authorization header")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Result is the outcome of a successful registration or login.
type Result struct {
	Token string
	User  models.User
}

type Service struct {
	store      store.Store
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(st store.Store, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Service{store: st, sessionTTL: sessionTTL, now: time.Now}
}

// Register creates a user and an initial session. The email lookup here is
// only a fast path; the store's unique index is what actually prevents two
// concurrent registrations from sharing an email.
func (s *Service) Register(ctx context.Context, name, email, password string) (Result, error) {
	_, _, err := s.store.UserByEmail(ctx, email)
	if err == nil {
		return Result{}, store.ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return Result{}, err
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return Result{}, err
	}
	user, err := s.store.CreateUser(ctx, name, email, passwordHash)
	if err != nil {
		return Result{}, err
	}
	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return Result{}, err
	}
	return Result{Token: token, User: user}, nil
}

// Login verifies the credentials and issues a new session. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	user, passwordHash, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, err
	}
	if !VerifyPassword(password, passwordHash) {
		return Result{}, ErrInvalidCredentials
	}
	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return Result{}, err
	}
	return Result{Token: token, User: user}, nil
}

// Authenticate resolves an Authorization header value to a user. This is the
// sole authentication check in the system: the token carries no signature,
// its unguessability and the store lookup are the whole scheme.
func (s *Service) Authenticate(ctx context.Context, header string) (models.User, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return models.User{}, ErrMissingAuth
	}
	// Malformed means a wrong scheme; everything after the first space is
	// the token and any junk there simply fails resolution.
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return models.User{}, ErrMalformedAuth
	}
	user, err := s.store.ResolveSession(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.User{}, ErrInvalidToken
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Service) issueSession(ctx context.Context, userID string) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}
	expiresAt := s.now().UTC().Add(s.sessionTTL)
	if _, err := s.store.CreateSession(ctx, userID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// newSessionToken returns a URL-safe token with 32 bytes of entropy. No
// collision check: uniqueness rests on the entropy width.
func newSessionToken() (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
