// Package api implements the taskdeck HTTP REST API.
//
// This package provides:
//   - Account endpoints: registration, login, logout, admin user management
//   - Task endpoints: per-account CRUD with owner/admin authorisation
//   - JWT bearer authentication backed by revocable server-side sessions
//   - Middleware stack (request ID, logging, recovery, CORS, body limits)
//   - TLS support for production deployments
//
// # Authorisation
//
// Every protected handler resolves the acting account from the bearer
// token, then checks the action against the rule chain in the auth
// package. Object-level checks pass the resource owner's ID so that
// non-owners are rejected with 403.
//
// # Graceful Degradation
//
// The server operates without an MQTT broker. Task and account lifecycle
// events are simply not published; no request ever fails because the
// broker is down.
package api
