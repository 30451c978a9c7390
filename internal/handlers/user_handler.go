package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/sirupsen/logrus"
)

// UserHandler handles registration, login and the current account.
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{Service: userService}
}

// RegisterUserHandler creates a new account.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during registration")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		respondError(w, err, "Failed to register user")
		return
	}
	respondJSON(w, http.StatusCreated, user.Public())
}

// LoginUserHandler verifies credentials and returns a token.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	token, user, err := h.Service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondError(w, err, "Failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

// GetCurrentUserHandler returns the authenticated account.
func (h *UserHandler) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	user, err := h.Service.GetUser(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to fetch user")
		return
	}
	respondJSON(w, http.StatusOK, user.Public())
}
