package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/taskdeck/internal/auth"
	"github.com/nerrad567/taskdeck/internal/events"
	"github.com/nerrad567/taskdeck/internal/task"
)

// createUserRequest is the request body for POST /users.
// Unlike self-registration, admins may set the flags at creation time.
type createUserRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
	IsBanned bool   `json:"is_banned"`
}

// updateUserRequest is the request body for PUT/PATCH /users/{id}.
// Email is immutable after registration; flag changes are admin-only.
type updateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
	IsBanned *bool   `json:"is_banned"`
}

// userDetail is the response body for GET /users/{id}: the account plus
// the tasks it owns.
type userDetail struct {
	*auth.User
	Tasks []task.Task `json:"tasks"`
}

// handleListUsers returns all accounts. Admin only.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if !s.authorize(w, actor, auth.ActionUserList, "") {
		return
	}

	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error("listing users failed", "error", err)
		writeInternalError(w, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// handleCreateUser creates an account directly. Admin only; self-service
// signup goes through /auth/register.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if !s.authorize(w, actor, auth.ActionUserCreate, "") {
		return
	}

	var req createUserRequest
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
		writeInternalError(w, "failed to create user")
		return
	}

	user := &auth.User{
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		IsBanned:     req.IsBanned,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeBadRequestCode(w, ErrCodeDuplicateUser, "email already registered")
			return
		}
		s.logger.Error("creating user failed", "error", err)
		writeInternalError(w, "failed to create user")
		return
	}

	s.events.UserEvent(events.EventUserRegistered, user)
	s.logger.Info("user created", "user_id", user.ID, "admin", actor.ID)

	writeJSON(w, http.StatusCreated, user)
}

// handleGetUser returns one account with its owned tasks. Accessible to
// the account itself and to admins.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if !s.authorize(w, actor, auth.ActionUserRead, id) {
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeNotFound(w, "the requested user does not exist")
			return
		}
		s.logger.Error("fetching user failed", "user_id", id, "error", err)
		writeInternalError(w, "failed to fetch user")
		return
	}

	tasks, err := s.tasks.ListByOwner(r.Context(), id)
	if err != nil {
		s.logger.Error("listing user tasks failed", "user_id", id, "error", err)
		writeInternalError(w, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, userDetail{User: user, Tasks: tasks})
}

// handleUpdateUser applies a partial update to an account. PUT and PATCH
// are treated identically. Password changes are open to the account itself
// and admins; ban and admin flags are admin-only, and admins cannot ban
// or demote their own account.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) { //nolint:gocognit // field-by-field permission checks
	actor := actorFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if !s.authorize(w, actor, auth.ActionUserUpdate, id) {
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeNotFound(w, "the requested user does not exist")
			return
		}
		s.logger.Error("fetching user failed", "user_id", id, "error", err)
		writeInternalError(w, "failed to fetch user")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		writeBadRequest(w, "email is immutable after registration")
		return
	}

	flagsChanged := false
	banned := false
	if req.IsBanned != nil && *req.IsBanned != user.IsBanned {
		if !actor.IsAdmin {
			writeForbidden(w, ErrCodeForbidden, "only admins can change account flags")
			return
		}
		if actor.ID == user.ID {
			writeBadRequest(w, "cannot ban your own account")
			return
		}
		user.IsBanned = *req.IsBanned
		banned = user.IsBanned
		flagsChanged = true
	}
	if req.IsAdmin != nil && *req.IsAdmin != user.IsAdmin {
		if !actor.IsAdmin {
			writeForbidden(w, ErrCodeForbidden, "only admins can change account flags")
			return
		}
		if actor.ID == user.ID && !*req.IsAdmin {
			writeBadRequest(w, "cannot demote your own account")
			return
		}
		user.IsAdmin = *req.IsAdmin
		flagsChanged = true
	}

	if flagsChanged {
		if err := s.users.Update(r.Context(), user); err != nil {
			s.logger.Error("updating user failed", "user_id", id, "error", err)
			writeInternalError(w, "failed to update user")
			return
		}
	}

	if req.Password != nil {
		if len(*req.Password) < 8 {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "password must be at least 8 characters")
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			s.logger.Error("hashing password failed", "error", err)
			writeInternalError(w, "failed to update user")
			return
		}
		if err := s.users.UpdatePassword(r.Context(), id, hash); err != nil {
			s.logger.Error("updating password failed", "user_id", id, "error", err)
			writeInternalError(w, "failed to update user")
			return
		}
	}

	// A ban takes effect immediately: every live session is cut.
	if banned {
		if err := s.sessions.RevokeAllForUser(r.Context(), id); err != nil {
			s.logger.Error("revoking sessions failed", "user_id", id, "error", err)
		}
		s.events.UserEvent(events.EventUserBanned, user)
	}

	s.logger.Info("user updated", "user_id", id, "actor", actor.ID)

	writeJSON(w, http.StatusOK, user)
}

// handleDeleteUser removes an account and everything it owns: tasks and
// sessions go with it. Accessible to the account itself and to admins.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if !s.authorize(w, actor, auth.ActionUserDelete, id) {
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeNotFound(w, "the requested user does not exist")
			return
		}
		s.logger.Error("fetching user failed", "user_id", id, "error", err)
		writeInternalError(w, "failed to delete user")
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		s.logger.Error("deleting user failed", "user_id", id, "error", err)
		writeInternalError(w, "failed to delete user")
		return
	}

	s.events.UserEvent(events.EventUserDeleted, user)
	s.logger.Info("user deleted", "user_id", id, "actor", actor.ID)

	w.WriteHeader(http.StatusNoContent)
}
