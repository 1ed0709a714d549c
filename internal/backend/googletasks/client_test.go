package googletasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"

	"focus/internal/backend/googletasks"
	"focus/internal/service"
)

// newTestClient points a Client at an httptest server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *googletasks.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := googletasks.NewWithHTTPClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestResolveList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/users/@me/lists") {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]string{
				{"id": "L1", "title": "My Tasks"},
				{"id": "L2", "title": " Focus "},
				{"id": "L3", "title": "Dup"},
				{"id": "L4", "title": "dup"},
			},
		})
	})
	ctx := context.Background()

	list, err := c.ResolveList(ctx, "focus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.ID != "L2" {
		t.Errorf("expected L2, got %+v", list)
	}

	if _, err := c.ResolveList(ctx, "Missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.ResolveList(ctx, "DUP"); !errors.Is(err, service.ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}
}

func TestCreateTask(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/lists/L2/tasks") {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"id": "T9", "title": "Buy milk"})
	})

	task, err := c.CreateTask(context.Background(), "L2", service.Task{
		Title:  "Buy milk",
		Due:    "2024-01-01T00:00:00.000Z",
		Status: service.StatusNeedsAction,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "T9" {
		t.Errorf("expected remote id T9, got %q", task.ID)
	}
	if got["title"] != "Buy milk" || got["due"] != "2024-01-01T00:00:00.000Z" {
		t.Errorf("unexpected request body %v", got)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
	})

	err := c.UpdateTask(context.Background(), "L2", service.Task{ID: "gone", Title: "x"})
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTask_AuthError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":401,"message":"Unauthorized"}}`, http.StatusUnauthorized)
	})

	err := c.DeleteTask(context.Background(), "L2", "T1")
	if err == nil || !strings.Contains(err.Error(), "focus link") {
		t.Errorf("expected relink hint, got %v", err)
	}
}
