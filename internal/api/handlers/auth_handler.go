package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	api "github.com/slidedeckhq/slidedeck-be/internal/api/respond"
	"github.com/slidedeckhq/slidedeck-be/internal/auth"
	"github.com/slidedeckhq/slidedeck-be/internal/services"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	service services.UserServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// CredentialsPayload is the body for signup and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles new account registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Signup(payload.Username, payload.Password); err != nil {
		api.Error(w, err, "Signup failed")
		return
	}
	api.Message(w, http.StatusCreated, "User created successfully")
}

// Login authenticates a user and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if err := h.service.Authenticate(username, payload.Password); err != nil {
		log.Warn().Str("username", username).Msg("failed authentication attempt")
		api.Error(w, err, "Login failed")
		return
	}

	token, err := auth.GenerateJWT(username)
	if err != nil {
		api.Error(w, err, "Login failed")
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": username,
	})
}

// Health reports service liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
