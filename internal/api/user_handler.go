package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mar333yas333/task-manager-api/internal/api/shared"
	"github.com/mar333yas333/task-manager-api/internal/domain"
	"github.com/mar333yas333/task-manager-api/internal/platform/logger"
	"github.com/mar333yas333/task-manager-api/internal/redact"
	"github.com/mar333yas333/task-manager-api/internal/service/auth"
	"github.com/mar333yas333/task-manager-api/internal/store"
)

// UserHandler handles profile-related API requests.
type UserHandler struct {
	userStore        store.UserStore
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}
	return &UserHandler{
		userStore:        userStore,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "user_handler")),
	}
}

// GetProfile handles GET /users/profile requests.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateProfile handles PUT /users/profile requests. Username and email
// uniqueness is checked against every other account; the caller's own row
// never conflicts with itself.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load profile")
		return
	}

	taken, err := h.userStore.UsernameTaken(r.Context(), req.Username, userID)
	if err != nil {
		log.Error("failed to check username uniqueness",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if taken {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username already exists.")
		return
	}

	if req.Email != nil && *req.Email != "" {
		taken, err := h.userStore.EmailTaken(r.Context(), *req.Email, userID)
		if err != nil {
			log.Error("failed to check email uniqueness",
				slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		if taken {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email already exists.")
			return
		}
	}

	user.Username = req.Username
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}

	log.Info("profile updated", slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, UpdateProfileResponse{
		User:    ProfileFields{Username: user.Username, Email: user.Email},
		Message: "Profile updated successfully",
	})
}

// DeleteAccount handles DELETE /users/profile requests. The caller's
// password gates the deletion; tasks and the auth token go with the account.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req DeleteAccountRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete account")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		if errors.Is(err, auth.ErrIncorrectPassword) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Incorrect password")
			return
		}
		log.Error("failed to verify password",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	if err := h.userStore.Delete(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete account")
		return
	}

	log.Info("account deleted", slog.String("user_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// userToResponse converts a domain.User to its profile representation.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		DateJoined: user.CreatedAt,
	}
}
