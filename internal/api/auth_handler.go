package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mar333yas333/task-manager-api/internal/api/shared"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
	"github.com/mar333yas333/task-manager-api/internal/redact"
	"github.com/mar333yas333/task-manager-api/internal/service/auth"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	tokenService     auth.TokenService
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	tokenService auth.TokenService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		userStore:        userStore,
		tokenService:     tokenService,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /register requests. A successful registration
// issues a token so the new account is signed in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	if req.Password != req.Password2 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Password fields don't match.")
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Username already exists.")
			return
		}
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists.")
			return
		}
		log.Error("failed to create user",
			slog.String("error", redact.Error(err)),
			slog.String("username", req.Username))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := h.tokenService.IssueToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to issue token",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		User:    userToResponse(user),
		Token:   token,
		Message: "User registered successfully",
	})
}

// Login handles POST /login requests. Unknown usernames and wrong
// passwords produce the same response so accounts cannot be enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to get user by username",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		if errors.Is(err, auth.ErrIncorrectPassword) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to verify password",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	token, err := h.tokenService.IssueToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to issue token",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Message:  "Login successful",
	})
}

// Logout handles POST /logout requests. The presented token is revoked;
// a token that is already gone still logs out cleanly.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	key := tokenKeyFromHeader(r)
	if err := h.tokenService.RevokeToken(r.Context(), key); err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrMissingToken) {
			log.Error("failed to revoke token",
				slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Logout successful"})
}

// tokenKeyFromHeader extracts the raw token key from the Authorization
// header, or "" when the header is absent or not in "Token <key>" form.
func tokenKeyFromHeader(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Token" {
		return ""
	}
	return parts[1]
}
