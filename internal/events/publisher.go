package events

import (
	"encoding/json"
	"time"

	"github.com/nerrad567/taskdeck/internal/auth"
	"github.com/nerrad567/taskdeck/internal/infrastructure/logging"
	"github.com/nerrad567/taskdeck/internal/infrastructure/mqtt"
	"github.com/nerrad567/taskdeck/internal/task"
)

// Event names used in topics and payloads.
const (
	EventTaskCreated    = "created"
	EventTaskUpdated    = "updated"
	EventTaskDeleted    = "deleted"
	EventUserRegistered = "registered"
	EventUserBanned     = "banned"
	EventUserDeleted    = "deleted"
)

// taskEnvelope is the wire format for task lifecycle events.
type taskEnvelope struct {
	Event     string     `json:"event"`
	Task      *task.Task `json:"task"`
	Timestamp time.Time  `json:"timestamp"`
}

// userEnvelope is the wire format for account lifecycle events.
// Only public fields are included; the password hash never leaves the user type's
// JSON marshalling anyway, but the envelope narrows it further.
type userEnvelope struct {
	Event     string    `json:"event"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits lifecycle events to the MQTT broker.
// A nil *Publisher is a no-op.
type Publisher struct {
	client *mqtt.Client
	logger *logging.Logger
	topics mqtt.Topics
}

// NewPublisher creates a Publisher on top of a connected MQTT client.
func NewPublisher(client *mqtt.Client, logger *logging.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger.With("component", "events"),
	}
}

// TaskEvent publishes a task lifecycle event.
func (p *Publisher) TaskEvent(event string, t *task.Task) {
	if p == nil || p.client == nil {
		return
	}

	payload, err := json.Marshal(taskEnvelope{
		Event:     event,
		Task:      t,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Error("marshalling task event", "event", event, "task_id", t.ID, "error", err)
		return
	}

	if err := p.client.PublishEvent(p.topics.TaskEvent(t.ID, event), payload); err != nil {
		p.logger.Warn("publishing task event", "event", event, "task_id", t.ID, "error", err)
	}
}

// UserEvent publishes an account lifecycle event.
func (p *Publisher) UserEvent(event string, u *auth.User) {
	if p == nil || p.client == nil {
		return
	}

	payload, err := json.Marshal(userEnvelope{
		Event:     event,
		UserID:    u.ID,
		Email:     u.Email,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Error("marshalling user event", "event", event, "user_id", u.ID, "error", err)
		return
	}

	if err := p.client.PublishEvent(p.topics.UserEvent(u.ID, event), payload); err != nil {
		p.logger.Warn("publishing user event", "event", event, "user_id", u.ID, "error", err)
	}
}
