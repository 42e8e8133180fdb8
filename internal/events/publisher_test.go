package events

import (
	"testing"

	"github.com/nerrad567/taskdeck/internal/auth"
	"github.com/nerrad567/taskdeck/internal/task"
)

func TestPublisher_NilIsNoop(t *testing.T) {
	var p *Publisher

	// Must not panic without a broker
	p.TaskEvent(EventTaskCreated, &task.Task{ID: "tsk-1"})
	p.UserEvent(EventUserRegistered, &auth.User{ID: "usr-1", Email: "a@example.com"})
}

func TestPublisher_DisconnectedClientIsNoop(t *testing.T) {
	p := &Publisher{}

	p.TaskEvent(EventTaskDeleted, &task.Task{ID: "tsk-1"})
	p.UserEvent(EventUserDeleted, &auth.User{ID: "usr-1"})
}
