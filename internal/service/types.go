package service

// Task status values used by Google Tasks.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a single remote task item.
type Task struct {
	ID     string
	Title  string
	Due    string // RFC 3339, date part only is significant; empty for none
	Status string // StatusNeedsAction or StatusCompleted
}

// TaskList represents a remote task list.
type TaskList struct {
	ID    string
	Title string
}
