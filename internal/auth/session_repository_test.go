package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSessionRepository_CreateAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewSessionRepository(db)
	user := seedTestUser(t, db, "ses@example.com", false)

	session := &Session{
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.HasPrefix(session.ID, "ses-") {
		t.Errorf("generated ID = %q, want ses- prefix", session.ID)
	}

	got, err := repo.GetByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", got.UserID, user.ID)
	}
	if got.Email != user.Email {
		t.Errorf("Email = %q, want %q", got.Email, user.Email)
	}
	if !got.Active(time.Now()) {
		t.Error("fresh session should be active")
	}
}

func TestSessionRepository_GetMissing(t *testing.T) {
	db := testDB(t)
	repo := NewSessionRepository(db)

	if _, err := repo.GetByID(context.Background(), "ses-missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetByID() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_Revoke(t *testing.T) {
	db := testDB(t)
	repo := NewSessionRepository(db)
	user := seedTestUser(t, db, "revoke@example.com", false)

	session := &Session{UserID: user.ID, Email: user.Email, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Revoke(context.Background(), session.ID); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.Revoked {
		t.Error("session should be revoked")
	}
	if got.Active(time.Now()) {
		t.Error("revoked session should not be active")
	}
}

func TestSessionRepository_RevokeAllForUser(t *testing.T) {
	db := testDB(t)
	repo := NewSessionRepository(db)
	user := seedTestUser(t, db, "multi@example.com", false)

	var ids []string
	for i := 0; i < 3; i++ {
		s := &Session{UserID: user.ID, Email: user.Email, ExpiresAt: time.Now().Add(time.Hour)}
		if err := repo.Create(context.Background(), s); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, s.ID)
	}

	if err := repo.RevokeAllForUser(context.Background(), user.ID); err != nil {
		t.Fatalf("RevokeAllForUser() error = %v", err)
	}

	for _, id := range ids {
		got, err := repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("GetByID(%s) error = %v", id, err)
		}
		if !got.Revoked {
			t.Errorf("session %s should be revoked", id)
		}
	}
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	db := testDB(t)
	repo := NewSessionRepository(db)
	user := seedTestUser(t, db, "expiry@example.com", false)

	expired := &Session{UserID: user.ID, Email: user.Email, ExpiresAt: time.Now().Add(-time.Hour)}
	live := &Session{UserID: user.ID, Email: user.Email, ExpiresAt: time.Now().Add(time.Hour)}
	for _, s := range []*Session{expired, live} {
		if err := repo.Create(context.Background(), s); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	deleted, err := repo.DeleteExpired(context.Background())
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteExpired() = %d, want 1", deleted)
	}

	if _, err := repo.GetByID(context.Background(), expired.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session should be gone, got error = %v", err)
	}
	if _, err := repo.GetByID(context.Background(), live.ID); err != nil {
		t.Errorf("live session should survive, got error = %v", err)
	}
}

func TestSession_Active(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{"nil session", nil, false},
		{"live", &Session{ExpiresAt: now.Add(time.Hour)}, true},
		{"revoked", &Session{ExpiresAt: now.Add(time.Hour), Revoked: true}, false},
		{"expired", &Session{ExpiresAt: now.Add(-time.Minute)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Active(now); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}
