package todo

// EventType names a registry change.
type EventType string

const (
	EventProjectAdded   EventType = "project_added"
	EventProjectUpdated EventType = "project_updated"
	EventProjectRemoved EventType = "project_removed"
	EventActiveChanged  EventType = "active_project_changed"
	EventTaskAdded      EventType = "task_added"
	EventTaskUpdated    EventType = "task_updated"
	EventTaskRemoved    EventType = "task_removed"
	EventTaskToggled    EventType = "task_toggled"
)

// Event describes a persisted change.
type Event struct {
	Type      EventType `json:"type"`
	ProjectID string    `json:"projectId,omitempty"`
	TaskID    string    `json:"taskId,omitempty"`
	Version   int       `json:"version"`
}

// Notifier receives events after each successful persist.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify implements Notifier.
func (f NotifierFunc) Notify(e Event) { f(e) }
