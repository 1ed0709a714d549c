// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"focus/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.Task // listID -> tasks
	nextID int

	// Calls records every mutating call as "Method listID arg".
	Calls []string

	// Error injection for testing
	ResolveListErr error
	CreateListErr  error
	CreateTaskErr  error
	UpdateTaskErr  error
	DeleteTaskErr  error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks: make(map[string][]service.Task),
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// Tasks returns a copy of the tasks in a list.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

// RemoveTask drops a task without recording a call, simulating a remote edit.
func (f *FakeService) RemoveTask(listID, taskID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(listID, taskID)
}

func (f *FakeService) removeLocked(listID, taskID string) bool {
	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			f.tasks[listID] = append(f.tasks[listID][:i], f.tasks[listID][i+1:]...)
			return true
		}
	}
	return false
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, service.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, service.ErrAmbiguous
	}
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	// Generate a simple ID
	id := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	list := service.TaskList{ID: id, Title: name}
	f.lists = append(f.lists, list)
	f.tasks[id] = nil
	f.Calls = append(f.Calls, "CreateList "+name)
	return list, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID string, task service.Task) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, service.ErrNotFound
	}

	f.nextID++
	task.ID = fmt.Sprintf("r%d", f.nextID)
	f.tasks[listID] = append(f.tasks[listID], task)
	f.Calls = append(f.Calls, fmt.Sprintf("CreateTask %s %s", listID, task.Title))
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, listID string, task service.Task) error {
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks[listID] {
		if t.ID == task.ID {
			f.tasks[listID][i] = task
			f.Calls = append(f.Calls, fmt.Sprintf("UpdateTask %s %s", listID, task.ID))
			return nil
		}
	}
	return service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, listID, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.removeLocked(listID, taskID) {
		return service.ErrNotFound
	}
	f.Calls = append(f.Calls, fmt.Sprintf("DeleteTask %s %s", listID, taskID))
	return nil
}
