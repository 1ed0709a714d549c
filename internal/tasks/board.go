// Package tasks owns the dated task collection and the free-text note, and
// derives the Active, Done and Missed views from them.
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"focus/internal/storage"
)

// ErrEmptyTaskText is returned by Add when the text is blank.
var ErrEmptyTaskText = errors.New("task text required")

// Task is a single dated to-do item.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// bundle is the persisted form of a Board.
type bundle struct {
	Tasks []Task `json:"tasks"`
	Note  string `json:"note"`
}

// Board is the task collection and note, persisted after every mutation.
// Tasks are kept newest first.
type Board struct {
	kv     storage.Store
	logger *log.Logger
	now    func() time.Time

	tasks []Task
	note  string
}

// Load reads the task bundle from kv. A missing, unreadable or malformed
// bundle yields an empty board; the problem is only logged.
func Load(kv storage.Store, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	b := &Board{kv: kv, logger: logger, now: time.Now}

	data, ok, err := kv.Get(storage.KeyBundle)
	if err != nil {
		logger.Printf("task bundle unreadable, starting empty: %v", err)
		return b
	}
	if !ok {
		return b
	}

	var saved bundle
	if err := json.Unmarshal(data, &saved); err != nil {
		logger.Printf("task bundle malformed, starting empty: %v", err)
		return b
	}
	b.tasks = saved.Tasks
	b.note = saved.Note
	return b
}

// SetClock replaces the wall clock (for testing).
func (b *Board) SetClock(now func() time.Time) {
	b.now = now
}

// Now returns the board's current time.
func (b *Board) Now() time.Time {
	return b.now()
}

// Save writes the whole bundle, replacing the stored one.
func (b *Board) Save() error {
	return b.commit(b.tasks, b.note)
}

// commit stores tasks and note, and adopts them only once the write
// succeeded, so a failed save leaves the board as it was.
func (b *Board) commit(tasks []Task, note string) error {
	saved := bundle{Tasks: tasks, Note: note}
	if saved.Tasks == nil {
		saved.Tasks = []Task{}
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	if err := b.kv.Set(storage.KeyBundle, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	b.tasks = tasks
	b.note = note
	return nil
}

// Tasks returns a copy of the collection, newest first.
func (b *Board) Tasks() []Task {
	out := make([]Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Note returns the note text.
func (b *Board) Note() string {
	return b.note
}

// Find returns the task with the given id.
func (b *Board) Find(id int64) (Task, bool) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add creates an open task on date and puts it first. Blank text is
// rejected with ErrEmptyTaskText and nothing is stored.
func (b *Board) Add(text, date string) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, ErrEmptyTaskText
	}
	t := Task{
		ID:   b.nextID(),
		Text: text,
		Date: date,
	}
	if err := b.commit(append([]Task{t}, b.tasks...), b.note); err != nil {
		return Task{}, err
	}
	return t, nil
}

// nextID is the current unix millisecond, bumped past every existing id so
// two adds in the same millisecond still get distinct ids.
func (b *Board) nextID() int64 {
	id := b.now().UnixMilli()
	for _, t := range b.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// Toggle flips completion of the task with id. Unknown ids are ignored.
func (b *Board) Toggle(id int64) error {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			next := b.Tasks()
			next[i].Completed = !next[i].Completed
			return b.commit(next, b.note)
		}
	}
	return nil
}

// Delete removes the task with id. Unknown ids are ignored.
func (b *Board) Delete(id int64) error {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return b.commit(append(b.tasks[:i:i], b.tasks[i+1:]...), b.note)
		}
	}
	return nil
}

// SetNote replaces the note, empty text included.
func (b *Board) SetNote(text string) error {
	return b.commit(b.tasks, text)
}

// Active is the Active view for the selected day.
func (b *Board) Active(selected time.Time) []Task {
	return Active(b.tasks, selected)
}

// Done is the Done view.
func (b *Board) Done() []Task {
	return Done(b.tasks)
}

// Missed is the Missed view against the board's clock.
func (b *Board) Missed() []Task {
	return Missed(b.tasks, b.now())
}
