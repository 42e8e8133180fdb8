package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nerrad567/taskdeck/internal/auth"
	"github.com/nerrad567/taskdeck/internal/infrastructure/config"
	"github.com/nerrad567/taskdeck/internal/infrastructure/logging"
	"github.com/nerrad567/taskdeck/internal/task"
)

// testPassword is the password every seeded test account uses.
const testPassword = "test-password"

// testEnv bundles a running test server with direct repository access.
type testEnv struct {
	ts       *httptest.Server
	db       *sql.DB
	users    auth.UserRepository
	sessions auth.SessionRepository
	tasks    task.Repository
}

// newTestEnv builds a server on a temporary SQLite database and serves it
// over httptest. Everything is cleaned up when the test completes.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	f, err := os.CreateTemp("", "api-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationSQL := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_banned INTEGER NOT NULL DEFAULT 0,
			is_admin INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE TABLE sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			email TEXT NOT NULL,
			expires_at TEXT NOT NULL,
			revoked INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) STRICT;

		CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'created',
			owner_id TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
		) STRICT;
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying schema: %v", err)
	}

	users := auth.NewUserRepository(db)
	sessions := auth.NewSessionRepository(db)
	tasks := task.NewRepository(db)

	srv, err := New(Deps{
		Config: config.APIConfig{Host: "127.0.0.1", Port: 8080},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:     "test-secret-key-at-least-32-chars!",
				SessionTTL: 60,
			},
		},
		Logger:   logging.Default(),
		Users:    users,
		Sessions: sessions,
		Tasks:    tasks,
		DB:       db,
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	ts := httptest.NewServer(srv.buildRouter())
	t.Cleanup(ts.Close)

	return &testEnv{
		ts:       ts,
		db:       db,
		users:    users,
		sessions: sessions,
		tasks:    tasks,
	}
}

// seedUser inserts an account directly through the repository.
func (e *testEnv) seedUser(t *testing.T, email string, admin bool) *auth.User {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	user := &auth.User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}

// login authenticates via the API and returns the bearer token.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": testPassword,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: status = %d; body: %s", email, status, body)
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	return resp.AccessToken
}

// do performs a request against the test server, optionally authenticated
// and with a JSON body, and returns status plus raw response body.
func (e *testEnv) do(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshalling request body: %v", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, e.ts.URL+path, bodyReader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return resp.StatusCode, raw
}

// errCode extracts the error code from a structured error response.
func errCode(t *testing.T, body []byte) string {
	t.Helper()

	var e Error
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatalf("decoding error body %s: %v", body, err)
	}
	return e.Code
}
