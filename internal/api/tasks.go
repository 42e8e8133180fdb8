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

// createTaskRequest is the request body for POST /todo.
type createTaskRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Status      task.Status `json:"status"`
}

// createTaskForRequest is the request body for POST /todo/admin.
// Owner is the email address of the account the task is created on
// behalf of.
type createTaskForRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Status      task.Status `json:"status"`
	Owner       string      `json:"owner" validate:"required"`
}

// updateTaskRequest is the request body for PUT/PATCH /todo/{id}.
// PATCH treats every field as optional; PUT additionally demands
// title and description.
type updateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *task.Status `json:"status"`
	Owner       *string      `json:"owner"`
}

// handleListTasks returns tasks visible to the caller: admins see every
// task, everyone else sees their own.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if !s.authorize(w, actor, auth.ActionTaskList, "") {
		return
	}

	var (
		tasks []task.Task
		err   error
	)
	if actor.IsAdmin {
		tasks, err = s.tasks.List(r.Context())
	} else {
		tasks, err = s.tasks.ListByOwner(r.Context(), actor.ID)
	}
	if err != nil {
		s.logger.Error("listing tasks failed", "error", err)
		writeInternalError(w, "failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// handleMyTasks returns the caller's own tasks, admin or not.
func (s *Server) handleMyTasks(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if !s.authorize(w, actor, auth.ActionTaskList, "") {
		return
	}

	tasks, err := s.tasks.ListByOwner(r.Context(), actor.ID)
	if err != nil {
		s.logger.Error("listing tasks failed", "user_id", actor.ID, "error", err)
		writeInternalError(w, "failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// handleCreateTask creates a task owned by the caller.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if !s.authorize(w, actor, auth.ActionTaskCreate, "") {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "fields required: title and description")
		return
	}
	if req.Status != "" && !task.IsValidStatus(req.Status) {
		writeBadRequest(w, "invalid status (valid: created, in_progress, done)")
		return
	}

	t := &task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		OwnerID:     actor.ID,
	}
	if err := s.tasks.Create(r.Context(), t); err != nil {
		s.logger.Error("creating task failed", "user_id", actor.ID, "error", err)
		writeInternalError(w, "failed to create task")
		return
	}

	s.events.TaskEvent(events.EventTaskCreated, t)

	writeJSON(w, http.StatusCreated, t)
}

// handleCreateTaskFor creates a task on behalf of another account.
// Reserved for administrators.
func (s *Server) handleCreateTaskFor(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if !s.authorize(w, actor, auth.ActionTaskCreateFor, "") {
		return
	}

	var req createTaskForRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "fields required: title, description and owner")
		return
	}
	if req.Status != "" && !task.IsValidStatus(req.Status) {
		writeBadRequest(w, "invalid status (valid: created, in_progress, done)")
		return
	}

	owner, err := s.users.GetByEmail(r.Context(), req.Owner)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeBadRequestCode(w, ErrCodeUserNotFound, "the requested user does not exist")
			return
		}
		s.logger.Error("looking up owner failed", "owner", req.Owner, "error", err)
		writeInternalError(w, "failed to create task")
		return
	}

	t := &task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		OwnerID:     owner.ID,
	}
	if err := s.tasks.Create(r.Context(), t); err != nil {
		s.logger.Error("creating task failed", "owner", owner.ID, "error", err)
		writeInternalError(w, "failed to create task")
		return
	}

	s.events.TaskEvent(events.EventTaskCreated, t)
	s.logger.Info("task created for user", "task_id", t.ID, "owner", owner.ID, "admin", actor.ID)

	writeJSON(w, http.StatusCreated, t)
}

// handleGetTask returns a single task. Only the owner or an admin may read it.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	id := chi.URLParam(r, "id")

	t, err := s.tasks.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeNotFound(w, "task not found")
			return
		}
		s.logger.Error("fetching task failed", "task_id", id, "error", err)
		writeInternalError(w, "failed to fetch task")
		return
	}

	if !s.authorize(w, actor, auth.ActionTaskRead, t.OwnerID) {
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// handleUpdateTask applies an update to a task. PUT replaces the task
// and requires title and description; PATCH is partial and leaves
// absent fields untouched. The owner is immutable either way.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	id := chi.URLParam(r, "id")

	t, err := s.tasks.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeNotFound(w, "task not found")
			return
		}
		s.logger.Error("fetching task failed", "task_id", id, "error", err)
		writeInternalError(w, "failed to fetch task")
		return
	}

	if !s.authorize(w, actor, auth.ActionTaskUpdate, t.OwnerID) {
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if r.Method == http.MethodPut && (req.Title == nil || req.Description == nil) {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "fields required: title and description")
		return
	}

	if req.Owner != nil && *req.Owner != t.OwnerID {
		writeBadRequest(w, "task owner is immutable")
		return
	}
	if req.Title != nil {
		if *req.Title == "" {
			writeBadRequest(w, "title cannot be empty")
			return
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		if !task.IsValidStatus(*req.Status) {
			writeBadRequest(w, "invalid status (valid: created, in_progress, done)")
			return
		}
		t.Status = *req.Status
	}

	if err := s.tasks.Update(r.Context(), t); err != nil {
		s.logger.Error("updating task failed", "task_id", id, "error", err)
		writeInternalError(w, "failed to update task")
		return
	}

	s.events.TaskEvent(events.EventTaskUpdated, t)

	writeJSON(w, http.StatusOK, t)
}

// handleDeleteTask removes a task. Only the owner or an admin may delete it.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	id := chi.URLParam(r, "id")

	t, err := s.tasks.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeNotFound(w, "task not found")
			return
		}
		s.logger.Error("fetching task failed", "task_id", id, "error", err)
		writeInternalError(w, "failed to fetch task")
		return
	}

	if !s.authorize(w, actor, auth.ActionTaskDelete, t.OwnerID) {
		return
	}

	if err := s.tasks.Delete(r.Context(), id); err != nil {
		s.logger.Error("deleting task failed", "task_id", id, "error", err)
		writeInternalError(w, "failed to delete task")
		return
	}

	s.events.TaskEvent(events.EventTaskDeleted, t)

	w.WriteHeader(http.StatusNoContent)
}
