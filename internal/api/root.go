package api

import "net/http"

// handleRoot returns a directory of the endpoints available to the caller.
// Anonymous callers see the entry points for getting a token; authenticated
// callers see their task endpoints, and admins the account management ones.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	actor, _, _ := s.resolveActor(r)

	if actor == nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"register": "/auth/register",
			"login":    "/auth/login",
		})
		return
	}

	links := map[string]string{
		"tasks":    "/todo",
		"my_tasks": "/todo/me",
		"account":  "/users/" + actor.ID,
		"logout":   "/auth/logout",
	}
	if actor.IsAdmin {
		links["users"] = "/users"
		links["create_task_for"] = "/todo/admin"
	}

	writeJSON(w, http.StatusOK, links)
}
