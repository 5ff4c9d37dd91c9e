package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/service"
)

// AuthHandler serves the two unauthenticated endpoints: registration and
// login. Everything else in the API sits behind the token middleware.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the issued session token. The field name matches
// the API's original wire format.
type loginResponse struct {
	JWTToken string `json:"jwtToken"`
}

// HandleRegister creates a new account.
//
// POST /register
// Body: {"username": "alice", "name": "Alice", "password": "...", "gender": "female"}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := h.auth.Register(r.Context(), req.Username, req.Name, req.Password, req.Gender); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "user created successfully"})
}

// HandleLogin verifies credentials and returns a session token.
//
// POST /login
// Body: {"username": "alice", "password": "..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{JWTToken: token})
}
