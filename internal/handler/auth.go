// Package handler contains HTTP request handlers for the event registration
// application.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (path params, JSON body)
// 2. Call the service layer
// 3. Write the HTTP response (status code, JSON body)
//
// Handlers hold NO business logic beyond input presence checks — they are
// the glue between HTTP and the services.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/event-registration/internal/service"
)

// Authenticator is the slice of service.AuthService the handler needs.
// Declaring the interface at the consumer (here) instead of depending on the
// concrete struct lets tests swap in a tiny fake.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// AuthHandler exposes sign-up and login.
//
//	POST /api/auth/register → create account, respond {token}
//	POST /api/auth/login    → verify credentials, respond {token}
type AuthHandler struct {
	auth   Authenticator
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth Authenticator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// credentialsRequest is the body of both auth endpoints.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the success body of both auth endpoints.
// The token is the only thing the client persists.
type tokenResponse struct {
	Token string `json:"token"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/auth/register
// BODY: {"email": "u@x.com", "password": "pw123"}
//
// RESPONSES:
//
//	200 {"token": "..."}       → account created, user is signed in
//	400 {"msg": "User exists"} → email already taken
//	400 {"msg": ...}           → missing/malformed email or password
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("register: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, MsgResponse{Msg: "Invalid JSON body"})
		return
	}

	result, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: result.Token})
}

// HandleLogin verifies credentials and issues a session token.
//
// HTTP: POST /api/auth/login
// BODY: {"email": "u@x.com", "password": "pw123"}
//
// RESPONSES:
//
//	200 {"token": "..."}
//	400 {"msg": "Invalid credentials"} → unknown email OR wrong password
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("login: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, MsgResponse{Msg: "Invalid JSON body"})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: result.Token})
}
