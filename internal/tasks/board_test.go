package tasks_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"
	"time"

	"focus/internal/storage"
	"focus/internal/tasks"
)

// fixedClock returns a clock frozen at the given local day and time.
func fixedClock(year int, month time.Month, day, hour int) func() time.Time {
	t := time.Date(year, month, day, hour, 0, 0, 0, time.Local)
	return func() time.Time { return t }
}

func newBoard(t *testing.T, kv storage.Store) *tasks.Board {
	t.Helper()
	b := tasks.Load(kv, nil)
	b.SetClock(fixedClock(2024, time.January, 2, 9))
	return b
}

func TestLoad_FreshStore(t *testing.T) {
	b := tasks.Load(storage.NewMemoryStore(), nil)

	if len(b.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %d", len(b.Tasks()))
	}
	if b.Note() != "" {
		t.Errorf("expected empty note, got %q", b.Note())
	}
}

func TestLoad_MalformedBundle(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.Set(storage.KeyBundle, []byte("{\"tasks\": [oops"))

	var logBuf bytes.Buffer
	b := tasks.Load(kv, log.New(&logBuf, "", 0))

	if len(b.Tasks()) != 0 || b.Note() != "" {
		t.Error("malformed bundle should load as empty")
	}
	if !strings.Contains(logBuf.String(), "malformed") {
		t.Errorf("expected malformed bundle to be logged, got %q", logBuf.String())
	}
}

func TestLoad_NullFields(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.Set(storage.KeyBundle, []byte(`{"tasks":null}`))

	b := tasks.Load(kv, nil)
	if len(b.Tasks()) != 0 || b.Note() != "" {
		t.Error("null tasks and missing note should default to empty")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	kv := storage.NewMemoryStore()
	b := newBoard(t, kv)
	b.Add("Buy milk", "2024-01-01")
	b.Add("Call mom", "2024-01-02")
	b.SetNote("remember the eggs")

	reloaded := tasks.Load(kv, nil)
	if !reflect.DeepEqual(reloaded.Tasks(), b.Tasks()) {
		t.Errorf("tasks differ after reload:\nwant %+v\ngot  %+v", b.Tasks(), reloaded.Tasks())
	}
	if reloaded.Note() != "remember the eggs" {
		t.Errorf("expected note to survive reload, got %q", reloaded.Note())
	}
}

func TestSave_EmptyBundleShape(t *testing.T) {
	kv := storage.NewMemoryStore()
	b := newBoard(t, kv)
	if err := b.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _, _ := kv.Get(storage.KeyBundle)
	if string(data) != `{"tasks":[],"note":""}` {
		t.Errorf("unexpected bundle %s", data)
	}
}

func TestLoad_BrowserBundle(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.Set(storage.KeyBundle, []byte(`{"tasks":[{"id":1704067200000,"text":"Buy milk","date":"Mon Jan 01 2024","completed":false}],"note":"hi"}`))

	b := newBoard(t, kv)
	if len(b.Missed()) != 1 {
		t.Errorf("expected browser-dated task to be missed, got %+v", b.Missed())
	}
}

func TestAdd(t *testing.T) {
	kv := storage.NewMemoryStore()
	b := newBoard(t, kv)

	task, err := b.Add("Buy milk", "2024-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
	if task.Text != "Buy milk" || task.Date != "2024-01-02" {
		t.Errorf("unexpected task %+v", task)
	}
	if len(b.Tasks()) != 1 {
		t.Errorf("expected 1 task, got %d", len(b.Tasks()))
	}
	if _, ok, _ := kv.Get(storage.KeyBundle); !ok {
		t.Error("add should persist the bundle")
	}
}

func TestAdd_PrependsNewest(t *testing.T) {
	b := newBoard(t, storage.NewMemoryStore())
	b.Add("first", "2024-01-02")
	b.Add("second", "2024-01-02")

	got := b.Tasks()
	if got[0].Text != "second" || got[1].Text != "first" {
		t.Errorf("expected newest first, got %+v", got)
	}
}

func TestAdd_BlankRejected(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		kv := storage.NewMemoryStore()
		b := newBoard(t, kv)

		_, err := b.Add(text, "2024-01-02")
		if !errors.Is(err, tasks.ErrEmptyTaskText) {
			t.Errorf("Add(%q): expected ErrEmptyTaskText, got %v", text, err)
		}
		if len(b.Tasks()) != 0 {
			t.Errorf("Add(%q): collection should be unchanged", text)
		}
		if _, ok, _ := kv.Get(storage.KeyBundle); ok {
			t.Errorf("Add(%q): nothing should be persisted", text)
		}
	}
}

func TestAdd_UniqueIDsWithinOneTick(t *testing.T) {
	b := newBoard(t, storage.NewMemoryStore())

	first, _ := b.Add("a", "2024-01-02")
	second, _ := b.Add("b", "2024-01-02")
	third, _ := b.Add("c", "2024-01-02")

	if !(first.ID < second.ID && second.ID < third.ID) {
		t.Errorf("expected strictly increasing ids, got %d %d %d", first.ID, second.ID, third.ID)
	}
}

func TestToggle_Involution(t *testing.T) {
	b := newBoard(t, storage.NewMemoryStore())
	task, _ := b.Add("Buy milk", "2024-01-02")

	b.Toggle(task.ID)
	if got, _ := b.Find(task.ID); !got.Completed {
		t.Fatal("first toggle should complete the task")
	}
	b.Toggle(task.ID)
	if got, _ := b.Find(task.ID); got.Completed {
		t.Error("second toggle should restore the task")
	}
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	b := newBoard(t, storage.NewMemoryStore())
	b.Add("Buy milk", "2024-01-02")
	before := b.Tasks()

	if err := b.Toggle(42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(before, b.Tasks()) {
		t.Error("toggle of unknown id should change nothing")
	}
}

func TestDelete_Idempotent(t *testing.T) {
	kv := storage.NewMemoryStore()
	b := newBoard(t, kv)
	keep, _ := b.Add("keep", "2024-01-02")
	gone, _ := b.Add("gone", "2024-01-02")

	if err := b.Delete(gone.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Delete(gone.ID); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}

	got := b.Tasks()
	if len(got) != 1 || got[0].ID != keep.ID {
		t.Errorf("expected only %d left, got %+v", keep.ID, got)
	}

	var saved struct {
		Tasks []tasks.Task `json:"tasks"`
	}
	data, _, _ := kv.Get(storage.KeyBundle)
	json.Unmarshal(data, &saved)
	if len(saved.Tasks) != 1 {
		t.Errorf("expected delete to be persisted, got %s", data)
	}
}

func TestSetNote(t *testing.T) {
	kv := storage.NewMemoryStore()
	b := newBoard(t, kv)

	b.SetNote("draft")
	b.SetNote("")

	if tasks.Load(kv, nil).Note() != "" {
		t.Error("empty note should replace the previous one")
	}
}

func TestMissedScenario(t *testing.T) {
	b := newBoard(t, storage.NewMemoryStore())
	task, _ := b.Add("Buy milk", "2024-01-01")

	if missed := b.Missed(); len(missed) != 1 || missed[0].ID != task.ID {
		t.Fatalf("expected task in Missed, got %+v", missed)
	}
	if len(b.Done()) != 0 {
		t.Fatal("expected Done to be empty")
	}

	b.Toggle(task.ID)

	if len(b.Missed()) != 0 {
		t.Error("completed task should leave Missed")
	}
	if done := b.Done(); len(done) != 1 || done[0].ID != task.ID {
		t.Errorf("completed task should appear in Done, got %+v", done)
	}
}

// failingStore accepts reads and rejects every write once broken is set.
type failingStore struct {
	*storage.MemoryStore
	broken bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Set(key string, value []byte) error {
	if s.broken {
		return errDiskFull
	}
	return s.MemoryStore.Set(key, value)
}

func TestMutations_FailedSaveLeavesBoardUnchanged(t *testing.T) {
	kv := &failingStore{MemoryStore: storage.NewMemoryStore()}
	b := newBoard(t, kv)
	task, err := b.Add("Buy milk", "2024-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.SetNote("before"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := b.Tasks()

	kv.broken = true

	if _, err := b.Add("Call mom", "2024-01-02"); !errors.Is(err, errDiskFull) {
		t.Errorf("Add: expected disk full, got %v", err)
	}
	if err := b.Toggle(task.ID); !errors.Is(err, errDiskFull) {
		t.Errorf("Toggle: expected disk full, got %v", err)
	}
	if err := b.Delete(task.ID); !errors.Is(err, errDiskFull) {
		t.Errorf("Delete: expected disk full, got %v", err)
	}
	if err := b.SetNote("after"); !errors.Is(err, errDiskFull) {
		t.Errorf("SetNote: expected disk full, got %v", err)
	}

	if !reflect.DeepEqual(b.Tasks(), want) {
		t.Errorf("board changed after failed saves:\nwant %+v\ngot  %+v", want, b.Tasks())
	}
	if b.Note() != "before" {
		t.Errorf("expected note %q, got %q", "before", b.Note())
	}
}
