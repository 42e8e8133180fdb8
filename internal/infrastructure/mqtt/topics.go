package mqtt

import "fmt"

// Topic prefixes for the taskdeck MQTT hierarchy.
//
// Event topics use the scheme: taskdeck/event/{resource}/{id}/{event}
const (
	// TopicPrefixEvent is the base for all lifecycle event topics.
	TopicPrefixEvent = "taskdeck/event"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "taskdeck/system"
)

// Topics provides builders for taskdeck MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.TaskEvent("tsk-1a2b3c4d", "created")
//	// Returns: "taskdeck/event/task/tsk-1a2b3c4d/created"
type Topics struct{}

// TaskEvent returns the topic for task lifecycle events.
//
// Example: taskdeck/event/task/tsk-1a2b3c4d/created
func (Topics) TaskEvent(taskID, event string) string {
	return fmt.Sprintf("%s/task/%s/%s", TopicPrefixEvent, taskID, event)
}

// UserEvent returns the topic for account lifecycle events.
//
// Example: taskdeck/event/user/usr-1a2b3c4d/registered
func (Topics) UserEvent(userID, event string) string {
	return fmt.Sprintf("%s/user/%s/%s", TopicPrefixEvent, userID, event)
}

// SystemStatus returns the system status topic.
// Online/offline presence is published retained here, including the LWT.
//
// Example: taskdeck/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllTaskEvents returns a pattern matching every task lifecycle event.
//
// Pattern: taskdeck/event/task/+/+
func (Topics) AllTaskEvents() string {
	return fmt.Sprintf("%s/task/+/+", TopicPrefixEvent)
}

// AllUserEvents returns a pattern matching every account lifecycle event.
//
// Pattern: taskdeck/event/user/+/+
func (Topics) AllUserEvents() string {
	return fmt.Sprintf("%s/user/+/+", TopicPrefixEvent)
}

// AllTopics returns a pattern matching all taskdeck topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: taskdeck/#
func (Topics) AllTopics() string {
	return "taskdeck/#"
}
