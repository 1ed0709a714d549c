// Package mirror pushes the local task collection to a remote task service
// and remembers which remote task mirrors which local one.
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"

	"focus/internal/service"
	"focus/internal/storage"
	"focus/internal/tasks"
)

// Map records the remote list and the local-id to remote-id pairs.
type Map struct {
	ListID string            `json:"listId"`
	Tasks  map[string]string `json:"tasks"`
}

// Result counts what a push changed remotely.
type Result struct {
	Created int
	Updated int
	Deleted int
}

// LoadMap reads the mirror map. Missing or malformed data yields an empty map.
func LoadMap(kv storage.Store) Map {
	m := Map{Tasks: make(map[string]string)}
	data, ok, err := kv.Get(storage.KeyMirror)
	if err != nil || !ok {
		return m
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return Map{Tasks: make(map[string]string)}
	}
	if m.Tasks == nil {
		m.Tasks = make(map[string]string)
	}
	return m
}

// SaveMap writes the mirror map.
func SaveMap(kv storage.Store, m Map) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := kv.Set(storage.KeyMirror, data); err != nil {
		return fmt.Errorf("failed to save mirror map: %w", err)
	}
	return nil
}

// Pusher mirrors a task collection into one remote list.
type Pusher struct {
	svc    service.Service
	kv     storage.Store
	logger *log.Logger
}

// NewPusher creates a Pusher. logger may be nil.
func NewPusher(svc service.Service, kv storage.Store, logger *log.Logger) *Pusher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Pusher{svc: svc, kv: kv, logger: logger}
}

// Push makes the remote list named listName match local. The list is created
// when missing. The map is saved even when a remote call fails part way, so
// tasks already created are not duplicated on the next push.
func (p *Pusher) Push(ctx context.Context, listName string, local []tasks.Task) (Result, error) {
	var res Result
	m := LoadMap(p.kv)

	list, err := p.ensureList(ctx, listName)
	if err != nil {
		return res, err
	}
	if list.ID != m.ListID {
		// A different list: every mapping is stale.
		m = Map{ListID: list.ID, Tasks: make(map[string]string)}
	}

	pushErr := p.push(ctx, &m, local, &res)
	if err := SaveMap(p.kv, m); err != nil {
		return res, err
	}
	return res, pushErr
}

func (p *Pusher) push(ctx context.Context, m *Map, local []tasks.Task, res *Result) error {
	seen := make(map[string]bool, len(local))
	for _, t := range local {
		key := strconv.FormatInt(t.ID, 10)
		seen[key] = true
		remote := toRemote(t)

		if remoteID, ok := m.Tasks[key]; ok {
			remote.ID = remoteID
			err := p.svc.UpdateTask(ctx, m.ListID, remote)
			if err == nil {
				p.logger.Printf("mirror: updated %s -> %s", key, remoteID)
				res.Updated++
				continue
			}
			if !errors.Is(err, service.ErrNotFound) {
				return fmt.Errorf("update task %s: %w", key, err)
			}
			// Removed remotely: create it again.
			remote.ID = ""
		}

		created, err := p.svc.CreateTask(ctx, m.ListID, remote)
		if err != nil {
			return fmt.Errorf("create task %s: %w", key, err)
		}
		p.logger.Printf("mirror: created %s -> %s", key, created.ID)
		m.Tasks[key] = created.ID
		res.Created++
	}

	// Sorted for a stable call order.
	var stale []string
	for key := range m.Tasks {
		if !seen[key] {
			stale = append(stale, key)
		}
	}
	sort.Strings(stale)
	for _, key := range stale {
		err := p.svc.DeleteTask(ctx, m.ListID, m.Tasks[key])
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			return fmt.Errorf("delete task %s: %w", key, err)
		}
		p.logger.Printf("mirror: deleted %s", key)
		delete(m.Tasks, key)
		res.Deleted++
	}
	return nil
}

func (p *Pusher) ensureList(ctx context.Context, name string) (service.TaskList, error) {
	list, err := p.svc.ResolveList(ctx, name)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, service.ErrNotFound) {
		return service.TaskList{}, err
	}
	p.logger.Printf("mirror: creating list %q", name)
	return p.svc.CreateList(ctx, name)
}

// toRemote converts a local task. Unparseable dates are sent without a due date.
func toRemote(t tasks.Task) service.Task {
	remote := service.Task{
		Title:  t.Text,
		Status: service.StatusNeedsAction,
	}
	if t.Completed {
		remote.Status = service.StatusCompleted
	}
	if day, ok := tasks.ParseDay(t.Date); ok {
		// Google Tasks keeps only the date part of due, as UTC midnight.
		remote.Due = day.Format(tasks.DayLayout) + "T00:00:00.000Z"
	}
	return remote
}
