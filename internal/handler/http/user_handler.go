package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/user-profile-service/internal/user"
)

const (
	welcomeText   = "Welcome to the user-service API!"
	healthTimeout = 2 * time.Second
)

// CreateUserRequest - полная запись пользователя, где name и email обязательны.
// Внешние Name и Email при декодировании перекрывают встроенные.
type CreateUserRequest struct {
	user.User
	Name  *user.Name `json:"name" validate:"required"`
	Email string     `json:"email" validate:"required"`
}

// UpdateUserRequest - запись для полной замены, обязательных полей нет.
type UpdateUserRequest = user.User

type UserHandler struct {
	service  user.Service
	validate *validator.Validate
}

func NewUserHandler(service user.Service) *UserHandler {
	validate := validator.New()
	return &UserHandler{
		service:  service,
		validate: validate,
	}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.handleIndex)
	router.Get("/healthz", h.handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Get("/users", h.handleListUsers)
		r.Post("/save-user", h.handleCreateUser)
		r.Put("/update-user/{id}", h.handleUpdateUser)
		r.Delete("/delete-user/{id}", h.handleDeleteUser)
	})
}

func (h *UserHandler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomeText))
}

func (h *UserHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		respondWithError(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *UserHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	if users == nil {
		users = []user.User{}
	}

	respondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateUserRequest
	if !decodeJSON(w, r, &requestPayload) {
		return
	}

	err := h.validate.Struct(requestPayload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
				Message: "Name and email are required",
				Details: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Type("validation_error_type", err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return
	}

	domainUser := requestPayload.User
	domainUser.Name = *requestPayload.Name
	domainUser.Email = requestPayload.Email

	createdUser, err := h.service.CreateUser(r.Context(), &domainUser)
	if err != nil {
		var clientMessage string
		if errors.Is(err, user.ErrEmailExists) {
			clientMessage = "User already exists"
		} else {
			log.Error().Err(err).Msg("Failed to create user via service")
			clientMessage = "Failed to create user"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, createdUser)
}

func (h *UserHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r)
	if !ok {
		return
	}

	var requestPayload UpdateUserRequest
	if !decodeJSON(w, r, &requestPayload) {
		return
	}

	updatedUser, err := h.service.UpdateUser(r.Context(), userID, &requestPayload)
	if err != nil {
		var clientMessage string
		switch {
		case errors.Is(err, user.ErrNotFound):
			clientMessage = "User not found"
		case errors.Is(err, user.ErrEmailExists):
			clientMessage = "User already exists"
		default:
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to update user via service")
			clientMessage = "Failed to update user"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, updatedUser)
}

func (h *UserHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r)
	if !ok {
		return
	}

	deletedUser, err := h.service.DeleteUser(r.Context(), userID)
	if err != nil {
		var clientMessage string
		if errors.Is(err, user.ErrNotFound) {
			clientMessage = "User not found"
		} else {
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to delete user via service")
			clientMessage = "Failed to delete user"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, deletedUser)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || userID <= 0 {
		log.Warn().Err(err).Str("user_id", idParam).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return 0, false
	}

	return userID, true
}
