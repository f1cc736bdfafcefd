package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"collabcode/backend/internal/auth"
	"collabcode/backend/internal/chat"
	"collabcode/backend/internal/models"
	"collabcode/backend/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Pinger reports database reachability for the health endpoint. Satisfied by
// *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth    *auth.Service
	chat    *chat.Service
	db      Pinger
	limiter *RateLimiter
	logger  *slog.Logger
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type postMessageRequest struct {
	Content string `json:"content"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHandler(authSvc *auth.Service, chatSvc *chat.Service, db Pinger, limiter *RateLimiter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{auth: authSvc, chat: chatSvc, db: db, limiter: limiter, logger: logger}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleRoot)
	r.Get("/healthz", h.handleHealth)

	// Only the public auth endpoints are rate limited; the chat feed is
	// poll-based and must not see 429s.
	r.Group(func(public chi.Router) {
		if h.limiter != nil {
			public.Use(h.limiter.Middleware)
		}
		public.Post("/auth/register", h.handleRegister)
		public.Post("/auth/login", h.handleLogin)
	})

	r.Group(func(protected chi.Router) {
		protected.Use(h.requireUser)
		protected.Get("/chat", h.handleListMessages)
		protected.Post("/chat", h.handlePostMessage)
	})

	return r
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// The password is hashed verbatim; only name and email are trimmed.
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name, email, and password are required")
		return
	}
	if !isValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid_request", "email must be a valid address")
		return
	}

	result, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "duplicate_email", "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: result.Token, Name: result.User.Name, Email: result.User.Email})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: result.Token, Name: result.User.Name, Email: result.User.Email})
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	views, err := h.chat.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	view, err := h.chat.Post(r.Context(), user, req.Content)
	if err != nil {
		if errors.Is(err, chat.ErrInvalidContent) {
			writeError(w, http.StatusBadRequest, "invalid_request", "content must be between 1 and 2000 characters")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "CollabCode Studio backend is running"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "ok"}
	if h.db == nil {
		resp.Database = "not configured"
	} else if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unavailable"
	}
	writeJSON(w, http.StatusOK, resp)
}

type contextKey struct{}

var userContextKey contextKey

// requireUser gates the chat routes on a resolvable bearer token and stashes
// the resolved user in the request context.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingAuth):
				writeError(w, http.StatusUnauthorized, "missing_authorization", "missing Authorization header")
			case errors.Is(err, auth.ErrMalformedAuth):
				writeError(w, http.StatusUnauthorized, "malformed_authorization", "Authorization header must be 'Bearer <token>'")
			case errors.Is(err, auth.ErrInvalidToken):
				writeError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			}
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) (user models.User, ok bool) {
	user, ok = ctx.Value(userContextKey).(models.User)
	return user, ok
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return false
	}
	return true
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: responseError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
