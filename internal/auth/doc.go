// Package auth provides authentication and authorisation for taskdeck.
//
// It implements a flat account model (user → admin) with:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - JWT access tokens bound to revocable server-side sessions
//   - An ordered rule chain for authorisation decisions
//
// The rule chain evaluates, in order: anonymous actors are denied, banned
// actors are denied, admins are allowed, then the action's scope decides
// (any authenticated account, resource owner only, or admin only). A ban
// therefore overrides admin status, and ownership never grants access to
// admin-scoped actions.
package auth
