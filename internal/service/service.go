// Package service defines the backend-agnostic interface for mirroring
// local tasks to a remote task service.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a list or task does not exist remotely.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")
)

// Service defines the remote operations the mirror needs.
// Commands never import the Google SDK directly.
type Service interface {
	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a task and returns it with its remote ID.
	CreateTask(ctx context.Context, listID string, task Task) (Task, error)

	// UpdateTask overwrites title, due date and status of task.ID.
	// Returns ErrNotFound if the task was removed remotely.
	UpdateTask(ctx context.Context, listID string, task Task) error

	// DeleteTask deletes a task. Deleting a missing task returns ErrNotFound.
	DeleteTask(ctx context.Context, listID, taskID string) error
}
