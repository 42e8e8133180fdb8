package auth

// Action represents a named operation subject to authorisation.
type Action string

// Action constants.
const (
	ActionTaskList      Action = "task:list"
	ActionTaskCreate    Action = "task:create"
	ActionTaskCreateFor Action = "task:create_for"
	ActionTaskRead      Action = "task:read"
	ActionTaskUpdate    Action = "task:update"
	ActionTaskDelete    Action = "task:delete"
	ActionUserList      Action = "user:list"
	ActionUserCreate    Action = "user:create"
	ActionUserRead      Action = "user:read"
	ActionUserUpdate    Action = "user:update"
	ActionUserDelete    Action = "user:delete"
)

// Scope is the minimum relationship an actor needs to a resource
// for an action to be allowed.
type Scope string

// Scope constants.
const (
	// ScopeAuthenticated actions need a live, non-banned account.
	ScopeAuthenticated Scope = "authenticated"

	// ScopeOwner actions additionally require the actor to own the target
	// (for user resources, to be the target account).
	ScopeOwner Scope = "owner"

	// ScopeAdmin actions are reserved for administrators.
	ScopeAdmin Scope = "admin"
)

// actionScopes maps each action to its required scope.
// This is the single source of truth for the authorisation model.
var actionScopes = map[Action]Scope{
	ActionTaskList:      ScopeAuthenticated,
	ActionTaskCreate:    ScopeAuthenticated,
	ActionTaskCreateFor: ScopeAdmin,
	ActionTaskRead:      ScopeOwner,
	ActionTaskUpdate:    ScopeOwner,
	ActionTaskDelete:    ScopeOwner,
	ActionUserList:      ScopeAdmin,
	ActionUserCreate:    ScopeAdmin,
	ActionUserRead:      ScopeOwner,
	ActionUserUpdate:    ScopeOwner,
	ActionUserDelete:    ScopeOwner,
}

// Request describes a single authorisation check.
type Request struct {
	// Actor is the account performing the action. Nil means anonymous.
	Actor *User

	// Action is the operation being attempted.
	Action Action

	// OwnerID identifies who owns the target resource. For user resources
	// it is the target user's ID. Empty for collection-level actions.
	OwnerID string
}

// rule is one step of the authorisation chain. A rule either decides
// (applies=true) or passes the request to the next rule.
type rule func(Request) (allow, applies bool)

// chain is evaluated in order; the first applicable rule decides.
// Order matters: a banned admin is denied before the admin rule is reached.
var chain = []rule{
	denyAnonymous,
	denyBanned,
	allowAdmin,
	decideByScope,
}

// Allowed reports whether the actor may perform the action.
func Allowed(req Request) bool {
	for _, r := range chain {
		if allow, applies := r(req); applies {
			return allow
		}
	}
	return false
}

func denyAnonymous(req Request) (bool, bool) {
	if req.Actor == nil {
		return false, true
	}
	return false, false
}

func denyBanned(req Request) (bool, bool) {
	if req.Actor.IsBanned {
		return false, true
	}
	return false, false
}

func allowAdmin(req Request) (bool, bool) {
	if req.Actor.IsAdmin {
		return true, true
	}
	return false, false
}

// decideByScope is the terminal rule: it always applies.
func decideByScope(req Request) (bool, bool) {
	switch actionScopes[req.Action] {
	case ScopeAuthenticated:
		return true, true
	case ScopeOwner:
		return req.OwnerID != "" && req.Actor.ID == req.OwnerID, true
	default:
		// ScopeAdmin and unknown actions: admins were already allowed above.
		return false, true
	}
}
