package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nerrad567/taskdeck/internal/auth"
	"github.com/nerrad567/taskdeck/internal/events"
)

// validate is the shared request validator.
var validate = validator.New()

// registerRequest is the request body for POST /auth/register.
type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse is the response body for POST /auth/login.
type loginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   time.Time  `json:"expires_at"`
	User        *auth.User `json:"user"`
}

// handleRegister creates a new account from an email and password.
// Registration is refused while the caller is authenticated; log out first.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	actor, _, _ := s.resolveActor(r)
	if actor != nil {
		writeBadRequestCode(w, ErrCodeAlreadyAuthenticated, "already authenticated; log out to register a new account")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "fields required: email and password (min 8 characters)")
		return
	}

	if !auth.IsValidEmail(req.Email) {
		writeBadRequestCode(w, ErrCodeInvalidEmail, "invalid email address")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hashing password failed", "error", err)
		writeInternalError(w, "failed to create account")
		return
	}

	user := &auth.User{
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeBadRequestCode(w, ErrCodeDuplicateUser, "email already registered")
			return
		}
		s.logger.Error("creating user failed", "error", err)
		writeInternalError(w, "failed to create account")
		return
	}

	s.events.UserEvent(events.EventUserRegistered, user)
	s.logger.Info("account registered", "user_id", user.ID, "email", user.Email)

	writeJSON(w, http.StatusOK, user)
}

// handleLogin verifies credentials, opens a session, and returns a JWT
// access token bound to it. Banned accounts cannot log in.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "fields required: email and password")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeBadRequestCode(w, ErrCodeUserNotFound, "the requested user does not exist")
			return
		}
		s.logger.Error("looking up user failed", "error", err)
		writeInternalError(w, "login failed")
		return
	}

	if user.IsBanned {
		writeBadRequestCode(w, ErrCodeUserBanned, "account is banned")
		return
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		writeBadRequestCode(w, ErrCodeInvalidCredentials, "invalid credentials")
		return
	}

	session := &auth.Session{
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(s.sessionTTL()),
	}
	if err := s.sessions.Create(r.Context(), session); err != nil {
		s.logger.Error("creating session failed", "user_id", user.ID, "error", err)
		writeInternalError(w, "login failed")
		return
	}

	token, err := auth.GenerateAccessToken(user, session.ID, s.secCfg.JWT.Secret, s.sessionTTL())
	if err != nil {
		s.logger.Error("signing token failed", "user_id", user.ID, "error", err)
		writeInternalError(w, "login failed")
		return
	}

	s.logger.Info("login", "user_id", user.ID, "session_id", session.ID)

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		User:        user,
	})
}

// handleLogout revokes the session behind the presented token.
// Without a live session there is nothing to log out of, so the
// request is rejected.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	actor, claims, err := s.resolveActor(r)
	if err != nil || actor == nil {
		writeBadRequestCode(w, ErrCodeNotAuthenticated, "not authenticated")
		return
	}

	if err := s.sessions.Revoke(r.Context(), claims.SessionID); err != nil {
		s.logger.Error("revoking session failed", "session_id", claims.SessionID, "error", err)
		writeInternalError(w, "logout failed")
		return
	}

	s.logger.Info("logout", "user_id", actor.ID, "session_id", claims.SessionID)

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
