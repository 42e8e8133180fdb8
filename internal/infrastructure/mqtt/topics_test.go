package mqtt

import "testing"

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"task event", topics.TaskEvent("tsk-1a2b3c4d", "created"), "taskdeck/event/task/tsk-1a2b3c4d/created"},
		{"user event", topics.UserEvent("usr-1a2b3c4d", "registered"), "taskdeck/event/user/usr-1a2b3c4d/registered"},
		{"system status", topics.SystemStatus(), "taskdeck/system/status"},
		{"all task events", topics.AllTaskEvents(), "taskdeck/event/task/+/+"},
		{"all user events", topics.AllUserEvents(), "taskdeck/event/user/+/+"},
		{"all topics", topics.AllTopics(), "taskdeck/#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
